package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	logx "github.com/cartchat-core-poc/server/pkg/logger"
)

//go:embed catalog.json
var catalogData []byte

// Service provides read-only access to the product catalog. The catalog is
// loaded once and cached; nodes never parse the raw data themselves.
type Service struct {
	products []model.Product
	byID     map[int]model.Product
}

// NewService builds a catalog service over the given products. Used directly
// by tests to inject fixtures.
func NewService(products []model.Product) *Service {
	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Service{products: products, byID: byID}
}

// Load parses and validates the embedded catalog.
func Load() (*Service, error) {
	var products []model.Product
	if err := json.Unmarshal(catalogData, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, p := range products {
		if p.ID < 100 || p.ID > 999 {
			return nil, fmt.Errorf("catalog product %q: id %d outside 3-digit range", p.Name, p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog product %d: negative price", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("catalog product %d: negative stock", p.ID)
		}
	}
	logx.Debug().Int("products", len(products)).Msg("catalog loaded")
	return NewService(products), nil
}

// List returns the full catalog.
func (s *Service) List() []model.Product {
	return s.products
}

// Get retrieves a product by id; ok is false when it does not exist.
func (s *Service) Get(productID int) (model.Product, bool) {
	p, ok := s.byID[productID]
	return p, ok
}
