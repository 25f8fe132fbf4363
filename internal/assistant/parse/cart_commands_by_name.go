package parse

import (
	"strconv"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// NameAction is a cart operation that still needs name resolution against the
// catalog ("añade el dior sauvage").
type NameAction struct {
	Op   model.CartOp
	Qty  int
	Hint string
}

// CartCommandsByName splits a message into cart operations, separating the
// fragments already resolved by a 3-digit id from the ones that carry only a
// name hint. Verb carry-over applies across fragments, same as CartCommands.
func CartCommandsByName(text string) (withIDs []model.CartAction, byName []NameAction) {
	if text == "" {
		return nil, nil
	}

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

		if m := idOnlyRE.FindStringSubmatch(part); m != nil {
			pid, _ := strconv.Atoi(m[1])
			qty := fragmentQty(part)
			withIDs = append(withIDs, model.CartAction{Op: op, ProductID: pid, Qty: qty})
			continue
		}

		qty := fragmentQty(part)
		if hint := nameHint(part); hint != "" {
			byName = append(byName, NameAction{Op: op, Qty: qty, Hint: hint})
		}
	}
	return withIDs, byName
}

func fragmentQty(fragment string) int {
	if m := bareQtyRE.FindStringSubmatch(fragment); m != nil {
		q, _ := strconv.Atoi(m[1])
		return q
	}
	return 1
}

// nameHint strips verbs and numeric tokens so the remainder is a clean
// search query.
func nameHint(fragment string) string {
	hint := numTokenRE.ReplaceAllString(fragment, " ")
	for _, k := range addKeywords {
		hint = strings.ReplaceAll(hint, k, " ")
	}
	for _, k := range removeKeywords {
		hint = strings.ReplaceAll(hint, k, " ")
	}
	return strings.TrimSpace(wsRE.ReplaceAllString(hint, " "))
}
