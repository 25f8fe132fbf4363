package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// RecommendSlots are the structured constraints extracted from a
// recommendation request. Nil price bounds mean unconstrained.
type RecommendSlots struct {
	Families []string
	Audience string
	MinPrice *float64
	MaxPrice *float64
}

// Empty reports whether no constraint was recognized at all.
func (s RecommendSlots) Empty() bool {
	return len(s.Families) == 0 && s.Audience == "" && s.MinPrice == nil && s.MaxPrice == nil
}

// familySynonyms maps ES/EN surface forms to the canonical catalog families.
// "fresh" mapping to citrus is a deliberate heuristic.
var familySynonyms = []struct{ raw, norm string }{
	// EN
	{"woody", "woody"},
	{"wood", "woody"},
	{"citrus", "citrus"},
	{"fresh", "citrus"},
	{"floral", "floral"},
	{"oriental", "oriental"},
	{"amber", "oriental"},
	{"aquatic", "aquatic"},
	{"marine", "aquatic"},
	{"aromatic", "aromatic"},
	{"gourmand", "gourmand"},
	{"sweet", "gourmand"},
	{"fruity", "fruity"},
	{"leather", "leather"},
	// ES
	{"amaderado", "woody"},
	{"amaderados", "woody"},
	{"maderoso", "woody"},
	{"maderosos", "woody"},
	{"citrico", "citrus"},
	{"cítrico", "citrus"},
	{"citricos", "citrus"},
	{"cítricos", "citrus"},
	{"florales", "floral"},
	{"orientales", "oriental"},
	{"ambar", "oriental"},
	{"ámbar", "oriental"},
	{"acuatico", "aquatic"},
	{"acuático", "aquatic"},
	{"acuaticos", "aquatic"},
	{"acuáticos", "aquatic"},
	{"marino", "aquatic"},
	{"marinos", "aquatic"},
	{"aromatico", "aromatic"},
	{"aromático", "aromatic"},
	{"aromaticos", "aromatic"},
	{"aromáticos", "aromatic"},
	{"dulce", "gourmand"},
	{"dulces", "gourmand"},
	{"afrutado", "fruity"},
	{"afrutados", "fruity"},
	{"frutal", "fruity"},
	{"frutales", "fruity"},
	{"cuero", "leather"},
}

var (
	unisexRE = regexp.MustCompile(`\bunisex\b`)
	maleRE   = regexp.MustCompile(`\b(?:for\s+men|men|male|para\s+hombre|hombre|masculino)\b`)
	femaleRE = regexp.MustCompile(`\b(?:for\s+women|women|female|para\s+mujer|mujer|femenino)\b`)

	betweenRE = regexp.MustCompile(`\b(?:between|entre|de)\s*(\d+(?:[.,]\d+)?)\s*(?:and|y|a)\s*(\d+(?:[.,]\d+)?)\b`)
	underRE   = regexp.MustCompile(`\b(?:under|below|less than|menos de|por menos de|por debajo de)\s*(\d+(?:[.,]\d+)?)\b`)
	overRE    = regexp.MustCompile(`\b(?:over|more than|mas de|más de|por encima de)\s*(\d+(?:[.,]\d+)?)\b`)
	euroRE    = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*(?:€|eur|euros?)`)
)

// ParseRecommendSlots extracts families, audience and a price range from
// free text using mixed ES/EN heuristics.
func ParseRecommendSlots(text string) RecommendSlots {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return RecommendSlots{}
	}

	slots := RecommendSlots{
		Families: parseFamilies(t),
		Audience: parseAudience(t),
	}
	slots.MinPrice, slots.MaxPrice = parsePriceRange(t)
	return slots
}

func parseFamilies(t string) []string {
	var out []string
	seen := map[string]bool{}
	for _, syn := range familySynonyms {
		if !containsToken(t, syn.raw) || seen[syn.norm] {
			continue
		}
		seen[syn.norm] = true
		out = append(out, syn.norm)
	}
	return out
}

func containsToken(t, raw string) bool {
	if strings.Contains(raw, " ") {
		return strings.Contains(t, raw)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(raw) + `\b`)
	return re.MatchString(t)
}

func parseAudience(t string) string {
	switch {
	case unisexRE.MatchString(t):
		return "unisex"
	case maleRE.MatchString(t):
		return "male"
	case femaleRE.MatchString(t):
		return "female"
	}
	return ""
}

func parsePriceRange(t string) (minPrice, maxPrice *float64) {
	if m := betweenRE.FindStringSubmatch(t); m != nil {
		a, aok := toFloat(m[1])
		b, bok := toFloat(m[2])
		if aok && bok {
			if a > b {
				a, b = b, a
			}
			return &a, &b
		}
	}
	if m := underRE.FindStringSubmatch(t); m != nil {
		if v, ok := toFloat(m[1]); ok {
			return nil, &v
		}
	}
	if m := overRE.FindStringSubmatch(t); m != nil {
		if v, ok := toFloat(m[1]); ok {
			return &v, nil
		}
	}
	// A bare "100€" reads as a budget ceiling.
	if m := euroRE.FindStringSubmatch(t); m != nil {
		if v, ok := toFloat(m[1]); ok {
			return nil, &v
		}
	}
	return nil, nil
}

func toFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
