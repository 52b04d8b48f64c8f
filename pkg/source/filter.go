package source

import "strings"

// RequirementFilter decides whether a requirement code names a course of
// this curriculum. Rejected codes are dropped before they reach the graph.
type RequirementFilter func(code string) bool

// AcceptAll keeps every requirement.
func AcceptAll(string) bool { return true }

// PrefixFilter keeps requirements starting with one of prefixes. Without
// prefixes it keeps everything.
func PrefixFilter(prefixes ...string) RequirementFilter {
	var keep []string
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			keep = append(keep, p)
		}
	}
	if len(keep) == 0 {
		return AcceptAll
	}
	return func(code string) bool {
		for _, p := range keep {
			if strings.HasPrefix(code, p) {
				return true
			}
		}
		return false
	}
}
