package catalog

import "strings"

// Filter narrows a product list for display. The category filter applies
// first ("" and "all" mean no category filter). A non-nil allow-list of
// product ids then takes precedence over the free-text query; the two are
// never combined. The query is a case-insensitive substring match on the
// product name. Source order is preserved.
func Filter(list []Product, category, query string, allowed []string) []Product {
	out := list
	if category != "" && category != "all" {
		out = keep(out, func(p Product) bool { return p.Category == category })
	}
	switch {
	case allowed != nil:
		set := make(map[string]bool, len(allowed))
		for _, id := range allowed {
			set[id] = true
		}
		out = keep(out, func(p Product) bool { return set[p.ID] })
	case query != "":
		q := strings.ToLower(query)
		out = keep(out, func(p Product) bool {
			return strings.Contains(strings.ToLower(p.Name), q)
		})
	}
	return out
}

func keep(list []Product, match func(Product) bool) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}
