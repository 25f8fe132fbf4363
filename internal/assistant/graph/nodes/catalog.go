package nodes

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

var productIDRE = regexp.MustCompile(`\b(\d{3})\b`)

// ShowCatalog lists the available products.
func (d *Deps) ShowCatalog(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	products := d.Catalog.List()
	s.UIProducts = products
	s.UIProduct = nil
	s.UICartTotal = nil

	lines := []string{ux.T(s, "catalog_header", nil)}
	for _, p := range products {
		brand := ""
		if p.Brand != "" {
			brand = p.Brand + " - "
		}
		size := ""
		if p.SizeML > 0 {
			size = fmt.Sprintf(" %dml", p.SizeML)
		}
		conc := ""
		if p.Concentration != "" {
			conc = " (" + p.Concentration + ")"
		}
		lines = append(lines, fmt.Sprintf("- [%d] %s%s%s%s — €%s", p.ID, brand, p.Name, conc, size, euro(p.Price)))
	}

	lines = append(lines, "")
	if next := ux.T(s, "catalog_next", nil); next != "" {
		lines = append(lines, next)
	}

	s.AssistantMessage = strings.Join(lines, "\n")
	return s, nil
}

// ShowProductDetail renders one product, resolved by 3-digit id or by name.
// Several name matches arm a detail disambiguation.
func (d *Deps) ShowProductDetail(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	var productID int
	if m := productIDRE.FindStringSubmatch(s.UserMessage); m != nil {
		productID, _ = strconv.Atoi(m[1])
	}

	if productID == 0 {
		matches := d.Catalog.FindProductsByName(s.UserMessage, 5)
		switch {
		case len(matches) == 1:
			productID = matches[0]
		case len(matches) > 1:
			s.ArmProductChoice(model.ProductOpDetail, matches, 0)
			d.askPickOne(s, "detail_multiple_found", "detail_multiple_reply_hint", matches)
			return s, nil
		default:
			s.AssistantMessage = ux.T(s, "detail_not_found_by_name", nil)
			return s, nil
		}
	}

	product, ok := d.Catalog.Get(productID)
	s.UIProducts = nil
	s.UICartTotal = nil
	if !ok {
		s.UIProduct = nil
		s.AssistantMessage = ux.T(s, "product_not_found", ux.Params{"product_id": strconv.Itoa(productID)})
		return s, nil
	}

	s.UIProduct = &product
	s.SelectedProductID = product.ID
	s.AssistantMessage = d.renderProductDetail(s, product)
	return s, nil
}

// renderProductDetail formats the detail block shared by the detail node and
// choice resolution.
func (d *Deps) renderProductDetail(s *model.ConversationState, product model.Product) string {
	lines := []string{
		ux.T(s, "product_details_header", ux.Params{"product_label": product.Label()}),
		ux.T(s, "product_price", ux.Params{"price": euro(product.Price)}),
	}
	if product.Concentration != "" {
		lines = append(lines, ux.T(s, "product_concentration", ux.Params{"value": product.Concentration}))
	}
	if product.SizeML > 0 {
		lines = append(lines, ux.T(s, "product_size", ux.Params{"value": strconv.Itoa(product.SizeML)}))
	}
	if product.Family != "" {
		lines = append(lines, ux.T(s, "product_family", ux.Params{"value": product.Family}))
	}

	// Description in the session language, with cross-language fallback.
	desc := product.Description
	if ux.Lang(s) == "es" {
		if product.DescriptionES != "" {
			desc = product.DescriptionES
		}
	} else if desc == "" {
		desc = product.DescriptionES
	}
	if desc != "" {
		lines = append(lines, ux.T(s, "product_description", ux.Params{"value": desc}))
	}

	lines = append(lines, "")
	if next := ux.T(s, "product_details_next", nil); next != "" {
		lines = append(lines, next)
	}
	return strings.Join(lines, "\n")
}
