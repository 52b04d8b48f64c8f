package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Open returns the cache named by rawURL:
//
//	""                       file cache in defaultDir
//	"none", "off"            NullCache
//	file:///path/to/dir      file cache in that directory
//	redis://host:6379/0      RedisCache (also rediss://)
//	mongodb://host/db        MongoCache in db, or [DefaultMongoDatabase]
//
// Network backends are pinged before Open returns.
func Open(ctx context.Context, rawURL, defaultDir string) (Cache, error) {
	switch strings.ToLower(rawURL) {
	case "":
		return NewFileCache(defaultDir)
	case "none", "off":
		return NewNullCache(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("cache url: %w", err)
	}
	switch u.Scheme {
	case "file":
		dir := u.Path
		if u.Host != "" {
			dir = u.Host + dir
		}
		if dir == "" {
			dir = defaultDir
		}
		return NewFileCache(dir)
	case "redis", "rediss":
		return NewRedisCache(ctx, rawURL, "coursegrid:")
	case "mongodb", "mongodb+srv":
		db := strings.Trim(u.Path, "/")
		if db == "" {
			db = DefaultMongoDatabase
		}
		return NewMongoCache(ctx, rawURL, db, DefaultMongoCollection)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, u.Scheme)
}
