package curriculum

import "slices"

// topoSort orders codes with Kahn's algorithm. A course becomes ready once
// all of its requirements are placed; among ready courses the one seen first
// in the input goes next, so the result depends only on the input order.
//
// Courses never reaching zero remaining requirements lie on or behind a
// cycle and are reported through *CycleDetectedError.
func topoSort(order []string, nodes map[string]*Node, dependents map[string][]string) ([]string, error) {
	rank := make(map[string]int, len(order))
	remaining := make(map[string]int, len(order))
	var ready []int // ranks of ready courses, ascending

	for i, code := range order {
		rank[code] = i
		remaining[code] = len(nodes[code].Requirements)
		if remaining[code] == 0 {
			ready = append(ready, i)
		}
	}

	result := make([]string, 0, len(order))
	for len(ready) > 0 {
		curr := order[ready[0]]
		ready = ready[1:]
		result = append(result, curr)

		for _, dep := range dependents[curr] {
			remaining[dep]--
			if remaining[dep] == 0 {
				r := rank[dep]
				i, _ := slices.BinarySearch(ready, r)
				ready = slices.Insert(ready, i, r)
			}
		}
	}

	if len(result) < len(order) {
		var stuck []string
		for _, code := range order {
			if remaining[code] > 0 {
				stuck = append(stuck, code)
			}
		}
		slices.Sort(stuck)
		return nil, &CycleDetectedError{Courses: stuck}
	}
	return result, nil
}
