package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Helper()
	svc, err := Load()
	require.NoError(t, err)
	return svc
}

func TestLoadValidatesCatalog(t *testing.T) {
	svc := testService(t)
	require.NotEmpty(t, svc.List())

	p, ok := svc.Get(301)
	require.True(t, ok)
	assert.Equal(t, "Sauvage", p.Name)

	_, ok = svc.Get(999)
	assert.False(t, ok)
}

func TestFindProductsByNameSingleMatch(t *testing.T) {
	svc := testService(t)

	ids := svc.FindProductsByName("añade el sauvage", 10)
	assert.Equal(t, []int{301}, ids)

	ids = svc.FindProductsByName("invictus", 10)
	assert.Equal(t, []int{305}, ids)
}

func TestFindProductsByNameBrandReturnsAll(t *testing.T) {
	svc := testService(t)

	ids := svc.FindProductsByName("dior", 10)
	assert.ElementsMatch(t, []int{301, 315}, ids)
}

func TestFindProductsByNameStopwordsOnly(t *testing.T) {
	svc := testService(t)

	assert.Nil(t, svc.FindProductsByName("añade el del carrito", 10))
	assert.Nil(t, svc.FindProductsByName("", 10))
	assert.Nil(t, svc.FindProductsByName("301", 10))
}

func TestFindProductsByNameNoMatch(t *testing.T) {
	svc := testService(t)
	assert.Nil(t, svc.FindProductsByName("xyzzy perfume", 10))
}

func TestPickCandidateByText(t *testing.T) {
	svc := testService(t)
	candidates := []int{301, 315}

	id, ok := svc.PickCandidateByText("el sauvage", candidates)
	require.True(t, ok)
	assert.Equal(t, 301, id)

	id, ok = svc.PickCandidateByText("miss", candidates)
	require.True(t, ok)
	assert.Equal(t, 315, id)

	// Both candidates are Dior; a brand-only answer is a tie and must not guess.
	_, ok = svc.PickCandidateByText("dior", candidates)
	assert.False(t, ok)

	_, ok = svc.PickCandidateByText("chanel", candidates)
	assert.False(t, ok)
}

func TestParseChoice(t *testing.T) {
	candidates := []int{301, 315}

	id, ok := ParseChoice("1", candidates)
	require.True(t, ok)
	assert.Equal(t, 301, id)

	id, ok = ParseChoice("el 2", candidates)
	require.True(t, ok)
	assert.Equal(t, 315, id)

	id, ok = ParseChoice("315", candidates)
	require.True(t, ok)
	assert.Equal(t, 315, id)

	// A 3-digit literal outside the candidate set never resolves by index.
	_, ok = ParseChoice("302", candidates)
	assert.False(t, ok)

	_, ok = ParseChoice("5", candidates)
	assert.False(t, ok)

	_, ok = ParseChoice("ninguno", candidates)
	assert.False(t, ok)
}
