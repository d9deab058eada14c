package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/scentquiz/internal/models"
)

func TestCatalog_ReloadAndLookup(t *testing.T) {
	store := &stubStore{products: []models.Product{
		{ID: "a", Gender: models.GenderFemale, OlfactoryFamily: models.FamilyFloral, Available: true},
		{ID: "b", Gender: models.GenderMale, OlfactoryFamily: models.FamilyWoody},
		{ID: "c", OlfactoryFamily: models.FamilyFloral, Available: true},
	}}
	c := New(store)
	assert.Equal(t, 0, c.Len())

	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, 3, c.Len())

	p, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, models.GenderMale, p.Gender)
	_, ok = c.Get("zzz")
	assert.False(t, ok)

	st := c.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Available)
	assert.Equal(t, 1, st.ByGender[models.GenderUnisex])
	assert.Equal(t, 2, st.ByFamily[models.FamilyFloral])
	assert.False(t, st.LoadedAt.IsZero())
}

func TestCatalog_FailedReloadKeepsSnapshot(t *testing.T) {
	store := &stubStore{products: []models.Product{{ID: "a"}}}
	c := New(store)
	require.NoError(t, c.Reload(context.Background()))

	store.err = errors.New("disk gone")
	assert.Error(t, c.Reload(context.Background()))
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("a")
	assert.True(t, ok)
}
