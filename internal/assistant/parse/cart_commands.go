package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// Splits multi-action messages on punctuation, newlines and the ES/EN
// conjunctions: "add 2 of 310, 1 of 302 and remove 1 of 307".
var splitRE = regexp.MustCompile(`(?i)(?:,|;|\n|\s+y\s+|\s+and\s+)`)

// Optional quantity followed by a 3-digit product id. A bare "310" means
// qty 1.
var qtyIDFragmentRE = regexp.MustCompile(`(?i)\b(?:(\d+)\s*(?:x|of|del|de|units?|productos?)\s*)?(\d{3})\b`)

var addKeywords = []string{
	"add", "añade", "anade", "añadir", "añademe", "añádeme", "anademe",
	"añadme", "anadme", "agrega", "agregame", "agrégame", "mete", "meteme",
	"pon", "quiero", "llévame", "lleva", "buy", "take", "purchase",
}

var removeKeywords = []string{
	"remove", "quita", "quitar", "quítame", "quitame", "quiteme", "elimina",
	"saca", "borra", "delete", "drop",
}

// CartCommands parses a message into ordered add/remove actions addressed by
// product id. Fragments without an explicit verb inherit the last one seen
// ("añade 2 del 310 y 1 del 302" adds both).
func CartCommands(text string) []model.CartAction {
	if text == "" {
		return nil
	}

	var actions []model.CartAction
	var lastOp model.CartOp

	for _, part := range splitRE.Split(strings.ToLower(text), -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		op := DetectCartOp(part)
		if op == "" {
			op = lastOp
		} else {
			lastOp = op
		}
		if op == "" {
			continue
		}

		qty, pid := extractQtyAndID(part)
		if pid == 0 {
			continue
		}
		if qty == 0 {
			qty = 1
		}
		actions = append(actions, model.CartAction{Op: op, ProductID: pid, Qty: qty})
	}
	return actions
}

// DetectCartOp infers add/remove from a lowercase fragment. Remove keywords
// win so "quita lo que añadí" reads as a removal.
func DetectCartOp(fragment string) model.CartOp {
	for _, k := range removeKeywords {
		if strings.Contains(fragment, k) {
			return model.CartOpRemove
		}
	}
	for _, k := range addKeywords {
		if strings.Contains(fragment, k) {
			return model.CartOpAdd
		}
	}
	return ""
}

func extractQtyAndID(fragment string) (qty, productID int) {
	m := qtyIDFragmentRE.FindStringSubmatch(fragment)
	if m == nil {
		return 0, 0
	}
	if m[1] != "" {
		qty, _ = strconv.Atoi(m[1])
	}
	productID, _ = strconv.Atoi(m[2])
	return qty, productID
}
