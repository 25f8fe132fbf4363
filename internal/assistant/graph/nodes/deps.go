// Package nodes contains the graph handlers that execute a routed turn.
// Every handler has the same shape so the graph can wrap them as invokable
// lambdas: it receives the mutable state, produces the assistant reply and
// UI projection, and returns the state.
package nodes

import (
	"fmt"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/cart"
	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/recommend"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

// Deps bundles the collaborators shared by all handlers.
type Deps struct {
	Catalog   *catalog.Service
	Cart      cart.Ops
	Recommend *recommend.Service
}

func NewDeps(cat *catalog.Service) *Deps {
	return &Deps{
		Catalog:   cat,
		Cart:      cart.Ops{Catalog: cat},
		Recommend: &recommend.Service{Catalog: cat},
	}
}

func euro(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// askPickOne arms nothing by itself; it renders a numbered candidate menu
// under the given header key.
func (d *Deps) askPickOne(s *model.ConversationState, headerKey, hintKey string, candidates []int) {
	lines := []string{ux.T(s, headerKey, nil)}
	for i, pid := range candidates {
		if p, ok := d.Catalog.Get(pid); ok {
			lines = append(lines, fmt.Sprintf("%d) %s", i+1, p.Label()))
		}
	}
	lines = append(lines, ux.T(s, hintKey, nil))
	s.AssistantMessage = strings.Join(lines, "\n")
}
