package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

func fixtureService(t *testing.T) *Service {
	t.Helper()
	return &Service{Catalog: catalog.NewService([]model.Product{
		{ID: 302, Name: "Bleu de Chanel", Family: "woody", Audience: "male", Price: 124.5},
		{ID: 320, Name: "Terre d'Hermès", Family: "woody", Audience: "male", Price: 119.0},
		{ID: 322, Name: "Vetiver Pamplemousse", Family: "woody", Audience: "unisex", Price: 45.5},
		{ID: 310, Name: "Libre", Family: "floral", Audience: "female", Price: 105.0},
		{ID: 319, Name: "CK One", Family: "citrus", Audience: "unisex", Price: 49.9},
	})}
}

func TestRecommendStrictTier(t *testing.T) {
	svc := fixtureService(t)

	products := svc.Recommend(Query{Families: []string{"woody"}, Audience: "male"})
	require.Len(t, products, 2)
	// Sorted by price.
	assert.Equal(t, 320, products[0].ID)
	assert.Equal(t, 302, products[1].ID)
}

func TestRecommendRelaxesAudienceToUnisex(t *testing.T) {
	svc := fixtureService(t)
	maxPrice := 50.0

	// No male woody product under 50; the unisex one qualifies on tier 2.
	products := svc.Recommend(Query{Families: []string{"woody"}, Audience: "male", MaxPrice: &maxPrice})
	require.Len(t, products, 1)
	assert.Equal(t, 322, products[0].ID)
}

func TestRecommendNeverExceedsMaxPrice(t *testing.T) {
	svc := fixtureService(t)
	maxPrice := 40.0

	products := svc.Recommend(Query{Families: []string{"woody"}, MaxPrice: &maxPrice})
	assert.Empty(t, products)
}

func TestRecommendPriceRange(t *testing.T) {
	svc := fixtureService(t)
	minPrice, maxPrice := 100.0, 125.0

	products := svc.Recommend(Query{MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.Len(t, products, 3)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, minPrice)
		assert.LessOrEqual(t, p.Price, maxPrice)
	}
}

func TestRecommendLimit(t *testing.T) {
	svc := fixtureService(t)

	products := svc.Recommend(Query{Limit: 2})
	require.Len(t, products, 2)
	assert.Equal(t, 322, products[0].ID)
	assert.Equal(t, 319, products[1].ID)
}

func TestRecommendUnrelatedFamilyStaysEmpty(t *testing.T) {
	svc := fixtureService(t)

	products := svc.Recommend(Query{Families: []string{"leather"}})
	assert.Empty(t, products)
}

func TestSameFamilyIgnoresOtherConstraints(t *testing.T) {
	svc := fixtureService(t)

	products := svc.SameFamily([]string{"woody"})
	require.Len(t, products, 3)
	assert.Equal(t, 322, products[0].ID)
	assert.Equal(t, 320, products[1].ID)
	assert.Equal(t, 302, products[2].ID)
}
