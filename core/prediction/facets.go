package prediction

import (
	"sort"
	"strings"

	"github.com/kilianp07/predtrack/core/model"
)

// MaxCategoryFacet caps the number of categories offered as filter options.
const MaxCategoryFacet = 12

// CategoryFacet returns the most frequent categories, at most
// MaxCategoryFacet of them, in lexicographic order. Frequency ties are
// broken by first appearance in the input.
func CategoryFacet(preds []model.Prediction) []string {
	counts := map[string]int{}
	var order []string
	for _, p := range preds {
		for _, c := range p.Categories {
			if strings.TrimSpace(c) == "" {
				continue
			}
			if _, seen := counts[c]; !seen {
				order = append(order, c)
			}
			counts[c]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > MaxCategoryFacet {
		order = order[:MaxCategoryFacet]
	}
	out := make([]string, len(order))
	copy(out, order)
	sort.Strings(out)
	return out
}

// StatusFacet returns the distinct effective statuses with
// model.StatusPending first and the rest in lexicographic order.
func StatusFacet(preds []model.Prediction) []string {
	seen := map[model.Status]bool{}
	var out []string
	for _, p := range preds {
		s := model.EffectiveStatus(p)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, string(s))
	}
	pending := string(model.StatusPending)
	sort.Slice(out, func(i, j int) bool {
		if out[i] == pending {
			return out[j] != pending
		}
		if out[j] == pending {
			return false
		}
		return out[i] < out[j]
	})
	return out
}
