package nodes

import (
	"context"
	"strconv"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/recommend"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

// RecommendProduct renders recommendations for the constraints collected in
// state. With an empty result it explains what does exist in the requested
// family instead of inventing alternatives.
func (d *Deps) RecommendProduct(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	if s.RecommendationEmpty() {
		s.AssistantMessage = ux.T(s, "recommend_clarification_prompt", nil)
		s.UIProducts = nil
		s.UIProduct = nil
		s.UICartTotal = nil
		return s, nil
	}

	products := d.Recommend.Recommend(recommend.Query{
		Families: s.RecommendedFamilies,
		Audience: s.RecommendedAudience,
		MinPrice: s.RecommendedMinPrice,
		MaxPrice: s.RecommendedMaxPrice,
		Limit:    len(d.Catalog.List()),
	})

	if len(products) == 0 {
		sameFamily := d.Recommend.SameFamily(s.RecommendedFamilies)

		familyLabel := ux.T(s, "family_generic_label", nil)
		if len(s.RecommendedFamilies) > 0 {
			sep := " or "
			if ux.Lang(s) == "es" {
				sep = " o "
			}
			familyLabel = strings.Join(s.RecommendedFamilies, sep)
		}

		var lines []string
		if len(sameFamily) > 0 {
			lines = []string{
				ux.T(s, "recommend_no_results_in_price", ux.Params{"family_label": familyLabel}),
				"",
				ux.T(s, "recommend_but_have_family", ux.Params{"family_label": familyLabel}),
			}
		} else {
			lines = []string{ux.T(s, "recommend_no_family", ux.Params{"family_label": familyLabel})}
		}

		for _, p := range sameFamily {
			lines = append(lines, catalogItemLine(s, p))
		}

		s.UIProducts = sameFamily
		s.UIProduct = nil
		s.UICartTotal = nil
		s.AssistantMessage = strings.Join(lines, "\n")
		return s, nil
	}

	// Context for follow-ups like "añádelo".
	s.SelectedProductID = products[0].ID

	s.UIProducts = products
	s.UIProduct = nil
	s.UICartTotal = nil

	lines := []string{ux.T(s, "recommend_header", nil)}
	for _, p := range products {
		lines = append(lines, catalogItemLine(s, p))
	}

	s.AssistantMessage = strings.Join(lines, "\n")
	s.ClearRecommendation()
	return s, nil
}

func catalogItemLine(s *model.ConversationState, p model.Product) string {
	brand := ""
	if p.Brand != "" {
		brand = p.Brand + " - "
	}
	return ux.T(s, "catalog_item", ux.Params{
		"product_id": strconv.Itoa(p.ID),
		"brand":      brand,
		"name":       p.Name,
		"price":      euro(p.Price),
	})
}
