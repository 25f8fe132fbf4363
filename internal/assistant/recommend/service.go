// Package recommend filters the catalog against user-provided constraints.
package recommend

import (
	"sort"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// Service produces product recommendations from deterministic catalog
// filtering. It never invents products or prices.
type Service struct {
	Catalog *catalog.Service
}

// Query is the set of constraints collected from the user. Nil price bounds
// mean "unconstrained".
type Query struct {
	Families []string
	Audience string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

// Recommend applies a three-tier strategy:
//
//  1. strict match on family + audience + price;
//  2. relax audience male/female to also accept unisex, keeping family and
//     price constraints;
//  3. return empty, never an unrelated family or "just the cheapest".
//
// An empty result is intentional: the caller decides the next UX step.
func (s *Service) Recommend(q Query) []model.Product {
	families := normalizeFamilies(q.Families)

	familyOK := func(p model.Product) bool {
		if len(families) == 0 {
			return true
		}
		pf := strings.ToLower(strings.TrimSpace(p.Family))
		for _, f := range families {
			if pf == f {
				return true
			}
		}
		return false
	}
	priceOK := func(p model.Product) bool {
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			return false
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			return false
		}
		return true
	}

	audience := strings.ToLower(strings.TrimSpace(q.Audience))

	strict := s.filter(func(p model.Product) bool {
		if !familyOK(p) || !priceOK(p) {
			return false
		}
		if audience != "" && strings.ToLower(strings.TrimSpace(p.Audience)) != audience {
			return false
		}
		return true
	})
	if len(strict) > 0 {
		return capSorted(strict, q.Limit)
	}

	if audience == "male" || audience == "female" {
		relaxed := s.filter(func(p model.Product) bool {
			if !familyOK(p) || !priceOK(p) {
				return false
			}
			pa := strings.ToLower(strings.TrimSpace(p.Audience))
			return pa == audience || pa == "unisex"
		})
		if len(relaxed) > 0 {
			return capSorted(relaxed, q.Limit)
		}
	}

	return nil
}

// SameFamily returns every catalog product belonging to one of the requested
// families, sorted by price. Used to show what exists when the constrained
// query came back empty.
func (s *Service) SameFamily(families []string) []model.Product {
	norm := normalizeFamilies(families)
	out := s.filter(func(p model.Product) bool {
		if len(norm) == 0 {
			return true
		}
		pf := strings.ToLower(strings.TrimSpace(p.Family))
		for _, f := range norm {
			if pf == f {
				return true
			}
		}
		return false
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

func (s *Service) filter(keep func(model.Product) bool) []model.Product {
	var out []model.Product
	for _, p := range s.Catalog.List() {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func normalizeFamilies(families []string) []string {
	var out []string
	for _, f := range families {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func capSorted(products []model.Product, limit int) []model.Product {
	sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products
}
