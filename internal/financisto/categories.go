package financisto

import "sort"

// flattenCategories converts the legacy nested-set category tree of arbitrary
// depth into the two-level parent/child model.
//
// For each category, its ancestors (records whose [left,right] interval
// contains its left bound) are walked in ascending left order. The most
// recent ancestor at depth <= 1 is the candidate parent. Categories nested
// two or more levels deep cannot be represented: they are not created at all,
// and a migration mapping from their id to the depth-1 ancestor's id is
// recorded so that references elsewhere can be rewritten.
//
// Roots are returned in descending name order; persisting them in that order
// biases automatic color assignment, and the ordering contract must hold even
// though coloring itself lives elsewhere.
func flattenCategories(categories []categoryRecord) (roots, children []categoryRecord, migrated map[int64]int64) {
	migrated = make(map[int64]int64)

	for _, cat := range categories {
		if cat.ID <= 0 {
			continue
		}

		var ancestors []categoryRecord
		for _, other := range categories {
			if other.Left < cat.Left && cat.Left < other.Right {
				ancestors = append(ancestors, other)
			}
		}
		sort.Slice(ancestors, func(i, j int) bool {
			return ancestors[i].Left < ancestors[j].Left
		})

		var parentID int64
		depth := 0
		for _, ancestor := range ancestors {
			if depth <= 1 {
				parentID = ancestor.ID
			}
			depth++
		}

		if depth >= 2 {
			migrated[cat.ID] = parentID
			continue
		}

		cat.ParentID = parentID
		if parentID == 0 {
			roots = append(roots, cat)
		} else {
			children = append(children, cat)
		}
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Name > roots[j].Name
	})

	return roots, children, migrated
}
