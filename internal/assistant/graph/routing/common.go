// Package routing implements the deterministic first-claim-wins rule
// pipeline that decides how each user turn is handled. Rules are evaluated
// in a fixed order; the first one that claims the turn stops evaluation.
package routing

import (
	"regexp"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// Node names consumed by the graph branch. Rules write these into
// state.NextNode.
const (
	NodeInterpret        = "interpret_user"
	NodeShowCatalog      = "show_catalog"
	NodeShowDetail       = "show_product_detail"
	NodeAddToCart        = "add_to_cart"
	NodeRemoveFromCart   = "remove_from_cart"
	NodeViewCart         = "view_cart"
	NodeBulkCartUpdate   = "bulk_cart_update"
	NodeResolveChoice    = "resolve_product_choice"
	NodeAdjustCartQty    = "adjust_cart_qty"
	NodeCheckoutConfirm  = "checkout_confirm"
	NodeHandleConfirm    = "handle_checkout_confirmation"
	NodeHandleReview     = "handle_checkout_review"
	NodeCollectShipping  = "collect_shipping"
	NodeRecommendProduct = "recommend_product"
	NodeEcho             = "echo"
)

// Strong checkout intent detector (ES/EN). Centralized so exit detection and
// checkout routing share one keyword set.
var checkoutRE = regexp.MustCompile(`(?i)\b(checkout|pay|payment|pago|pagar|hacer el pago|finalizar(?:\s+la)?\s+compra|tramitar(?:\s+pedido)?)\b`)

func msgLower(s *model.ConversationState) string {
	return strings.ToLower(strings.TrimSpace(s.UserMessage))
}

var explicitSwitchPhrases = []string{
	"en español", "en espanol", "habla español", "habla espanol",
	"in english", "speak english", "english please",
}

// ExplicitLanguageSwitch reports whether the user explicitly asked to change
// language. Handled deterministically so routing never needs a model call
// for this.
func ExplicitLanguageSwitch(text string) bool {
	t := strings.ToLower(text)
	for _, k := range explicitSwitchPhrases {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

var (
	esSwitchPhrases = []string{"en español", "en espanol", "habla español", "habla espanol"}
	enSwitchPhrases = []string{"in english", "speak english", "english please"}

	enHintWords = []string{
		"show", "tell me", "details", "add", "remove", "delete", "cart",
		"pay", "recommend", "under", "cheaper", "please", "in english",
		"make it", "set it", "change it", "only", "just", "instead",
		"yes", "help",
	}

	esHintWords = []string{
		"añade", "anade", "añadir", "quita", "quitar", "carrito",
		"muestrame", "muéstrame", "ensename", "enseñame", "enséñame",
		"recomendar", "recomendarme", "recomiendame", "recomiéndame",
		"precio", "catalogo", "catálogo", "menos de", "euros", "hombre", "mujer",
		"quiero", "puedes", "me puedes", "amaderado", "amaderados", "maderoso", "maderosos",
		"cítrico", "citrico", "cítricos", "citricos", "floral", "florales",
		"oriental", "orientales", "ámbar", "ambar", "acuático", "acuatico", "acuáticos", "acuaticos",
		"marino", "marinos", "aromático", "aromatico", "aromáticos", "aromaticos",
		"dulce", "dulces", "gourmand", "afrutado", "afrutados", "frutal", "frutales",
		"cuero", "mejor", "solo", "que sea", "que sean", "cámbialo", "cambialo", "en vez de",
	}

	esMarkers = []string{"¿", "¡", "ñ", "á", "é", "í", "ó", "ú"}
)

// DetectLanguage is a best-effort ES/EN heuristic. It returns "" when the
// text carries no usable signal, keeping routing fast without a model call.
func DetectLanguage(text string) string {
	t := strings.ToLower(text)

	for _, k := range esSwitchPhrases {
		if strings.Contains(t, k) {
			return "es"
		}
	}
	for _, k := range enSwitchPhrases {
		if strings.Contains(t, k) {
			return "en"
		}
	}
	for _, k := range enHintWords {
		if strings.Contains(t, k) {
			return "en"
		}
	}
	for _, m := range esMarkers {
		if strings.Contains(t, m) {
			return "es"
		}
	}
	for _, k := range esHintWords {
		if strings.Contains(t, k) {
			return "es"
		}
	}
	return ""
}
