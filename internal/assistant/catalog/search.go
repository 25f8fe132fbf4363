package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Deterministic product name search. Token-based scoring keeps name
// resolution explainable and independent from any LLM.

var searchStopwords = map[string]bool{
	// ES
	"añade": true, "anade": true, "añadir": true, "agrega": true, "mete": true,
	"pon": true, "quita": true, "quitar": true, "borra": true, "elimina": true,
	"del": true, "de": true, "al": true, "el": true, "la": true, "los": true,
	"las": true, "un": true, "una": true, "unos": true, "unas": true,
	"carrito": true, "por": true, "favor": true, "quiero": true,
	"añademe": true, "añádeme": true, "anademe": true,
	// EN
	"add": true, "remove": true, "delete": true, "put": true, "set": true,
	"to": true, "the": true, "a": true, "an": true, "cart": true,
	"show": true, "me": true, "my": true, "please": true, "pls": true,
	"want": true, "would": true, "like": true,
}

var (
	digitsRE = regexp.MustCompile(`\b\d+\b`)
	spacesRE = regexp.MustCompile(`\s+`)
	idRE     = regexp.MustCompile(`\b(\d{3})\b`)
	numberRE = regexp.MustCompile(`\b(\d+)\b`)
)

func searchTokens(query string) []string {
	text := strings.ToLower(strings.TrimSpace(query))
	if text == "" {
		return nil
	}
	// Numeric tokens are product ids or quantities, never name fragments.
	text = digitsRE.ReplaceAllString(text, " ")

	var tokens []string
	for _, tok := range spacesRE.Split(text, -1) {
		// Very short tokens produce too many false positives.
		if tok == "" || searchStopwords[tok] || len([]rune(tok)) < 3 {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// FindProductsByName returns the ids of products whose brand or name best
// match the tokens extracted from the query, ties allowed, capped at limit.
// An empty result means "not found"; callers must never treat it as "show
// everything".
func (s *Service) FindProductsByName(query string, limit int) []int {
	tokens := searchTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	// A single token that exactly equals a brand returns that whole brand.
	if len(tokens) == 1 {
		var brandHits []int
		for _, p := range s.products {
			if strings.ToLower(p.Brand) == tokens[0] {
				brandHits = append(brandHits, p.ID)
			}
		}
		if len(brandHits) > 0 {
			if len(brandHits) > limit {
				brandHits = brandHits[:limit]
			}
			return brandHits
		}
	}

	type scored struct {
		score int
		id    int
	}
	var hits []scored
	for _, p := range s.products {
		hay := strings.ToLower(p.Brand + " " + p.Name)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(hay, tok) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{score: score, id: p.ID})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	best := hits[0].score

	var ids []int
	for _, h := range hits {
		if h.score != best || len(ids) >= limit {
			break
		}
		ids = append(ids, h.id)
	}
	return ids
}

// PickCandidateByText scores the text against a restricted candidate set and
// returns the single best candidate. A tied top score returns (0, false):
// the engine must ask, never guess.
func (s *Service) PickCandidateByText(text string, candidateIDs []int) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return 0, false
	}
	tokens := spacesRE.Split(q, -1)

	bestScore, bestID, tied := 0, 0, false
	for _, pid := range candidateIDs {
		p, ok := s.Get(pid)
		if !ok {
			continue
		}
		hay := strings.ToLower(p.Brand + " " + p.Name)
		score := 0
		for _, tok := range tokens {
			if tok != "" && strings.Contains(hay, tok) {
				score++
			}
		}
		switch {
		case score == 0:
			continue
		case score > bestScore:
			bestScore, bestID, tied = score, pid, false
		case score == bestScore:
			tied = true
		}
	}
	if bestScore == 0 || tied {
		return 0, false
	}
	return bestID, true
}

// ParseChoice interprets a reply to a numbered disambiguation prompt. A
// 3-digit number is tried as a literal product id (and must be among the
// candidates); any other integer is a 1-based index into the candidate list.
func ParseChoice(text string, candidateIDs []int) (int, bool) {
	t := strings.ToLower(strings.TrimSpace(text))

	if m := idRE.FindStringSubmatch(t); m != nil {
		pid, _ := strconv.Atoi(m[1])
		for _, c := range candidateIDs {
			if c == pid {
				return pid, true
			}
		}
		return 0, false
	}

	if m := numberRE.FindStringSubmatch(t); m != nil {
		idx, _ := strconv.Atoi(m[1])
		idx--
		if idx >= 0 && idx < len(candidateIDs) {
			return candidateIDs[idx], true
		}
	}
	return 0, false
}
