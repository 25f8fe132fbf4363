// Package parse holds the deterministic text parsers behind the routing
// rules. Everything here is regex-based and explainable; nothing calls out
// to a model.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Quantity + product id across EN/ES phrasing: "add 2 of 310", "quita 3 del 310".
var qtyIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d+)\s*(?:x|of)\s*(\d{3})\b`),
	regexp.MustCompile(`\b(\d+)\s*(?:del|de)\s*(\d{3})\b`),
}

// Product ids are 3-digit numbers in this catalog.
var idOnlyRE = regexp.MustCompile(`\b(\d{3})\b`)

var (
	xQtyRE     = regexp.MustCompile(`\bx\s*(\d{1,2})\b`)
	unitsQtyRE = regexp.MustCompile(`\b(\d{1,2})\s*(?:unidades?|units?|pcs?)\b`)
	bareQtyRE  = regexp.MustCompile(`\b(\d{1,2})\b`)
	numTokenRE = regexp.MustCompile(`\b\d+\b`)
	wsRE       = regexp.MustCompile(`\s+`)
)

// QtyAndProductID extracts (qty, productID) from free text. A qty of 0 means
// "not present"; a productID of 0 means nothing matched at all.
func QtyAndProductID(text string) (qty, productID int) {
	t := strings.ToLower(text)

	for _, re := range qtyIDPatterns {
		if m := re.FindStringSubmatch(t); m != nil {
			q, _ := strconv.Atoi(m[1])
			id, _ := strconv.Atoi(m[2])
			return q, id
		}
	}
	if m := idOnlyRE.FindStringSubmatch(t); m != nil {
		id, _ := strconv.Atoi(m[1])
		return 0, id
	}
	return 0, 0
}

// QtyOnly extracts a standalone 1-2 digit quantity ("x2", "2 unidades",
// plain "2"). The 2-digit cap keeps 3-digit product ids from being read as
// quantities. Returns 0 when no quantity is present.
func QtyOnly(text string) int {
	t := strings.ToLower(text)

	for _, re := range []*regexp.Regexp{xQtyRE, unitsQtyRE, bareQtyRE} {
		if m := re.FindStringSubmatch(t); m != nil {
			q, _ := strconv.Atoi(m[1])
			return q
		}
	}
	return 0
}

// Phrases that signal the user is adjusting a previously discussed quantity.
var adjustmentKeywords = []string{
	// ES
	"mejor", "solo", "que sea", "cámbialo", "cambialo", "en vez de",
	// EN
	"make it", "just", "only", "change it", "set it", "instead of", "better",
}

// Filler words stripped from the remaining hint text.
var adjustmentWeakWords = map[string]bool{
	// ES
	"mejor": true, "solo": true, "que": true, "sea": true, "sean": true,
	"cámbialo": true, "cambialo": true, "en": true, "vez": true, "de": true,
	"uno": true, "una": true,
	// EN
	"make": true, "it": true, "just": true, "only": true, "change": true,
	"set": true, "to": true, "instead": true, "of": true, "one": true,
}

// Adjustment parses messages like "mejor que sea 1" or "make it 2" into a
// target quantity plus an optional product hint ("make it 2 dior" keeps
// "dior"). Returns (0, "") when the message is not an adjustment.
func Adjustment(text string) (targetQty int, productHint string) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 0, ""
	}

	intent := false
	for _, k := range adjustmentKeywords {
		if strings.Contains(t, k) {
			intent = true
			break
		}
	}
	if !intent {
		return 0, ""
	}

	qty := QtyOnly(t)
	if qty == 0 {
		return 0, ""
	}

	hint := regexp.MustCompile(`\b`+strconv.Itoa(qty)+`\b`).ReplaceAllString(t, " ")
	var tokens []string
	for _, tok := range wsRE.Split(hint, -1) {
		if tok != "" && !adjustmentWeakWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return qty, strings.Join(tokens, " ")
}
