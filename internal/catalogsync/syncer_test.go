package catalogsync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/example/scentquiz/internal/models"
	"github.com/example/scentquiz/internal/shopify"
)

type fakeSource struct {
	products    []shopify.Product
	collections []shopify.Collection
	err         error
	titles      []string
}

func (f *fakeSource) FetchAllProducts(context.Context, int) ([]shopify.Product, error) {
	return f.products, f.err
}

func (f *fakeSource) FetchCollections(_ context.Context, titles []string, _ int) ([]shopify.Collection, error) {
	f.titles = titles
	return f.collections, f.err
}

type fakeStore struct {
	replaced [][]models.Product
	err      error
}

func (f *fakeStore) Load(context.Context) ([]models.Product, error) { return nil, nil }

func (f *fakeStore) Replace(_ context.Context, products []models.Product) error {
	if f.err != nil {
		return f.err
	}
	f.replaced = append(f.replaced, products)
	return nil
}

type fakeNotifier struct {
	summaries []*Summary
	failures  []error
}

func (f *fakeNotifier) NotifyCatalogSync(_ context.Context, s *Summary) error {
	f.summaries = append(f.summaries, s)
	return nil
}

func (f *fakeNotifier) NotifyCatalogSyncFailure(_ context.Context, _ string, err error) error {
	f.failures = append(f.failures, err)
	return nil
}

type SyncerSuite struct {
	suite.Suite
	source   *fakeSource
	store    *fakeStore
	notifier *fakeNotifier
	syncer   *Syncer
}

func (s *SyncerSuite) SetupTest() {
	s.source = &fakeSource{}
	s.store = &fakeStore{}
	s.notifier = &fakeNotifier{}
	s.syncer = NewSyncer(s.source, s.store, s.notifier, Options{})
}

func (s *SyncerSuite) TestCollectionsModeDedupesAndSummarizes() {
	shared := shopify.Product{ID: "gid://shopify/Product/1", Title: "Rose Garden", Handle: "rose", Status: "ACTIVE"}
	s.source.collections = []shopify.Collection{
		{Title: "MASCULINO", Products: []shopify.Product{
			shared,
			{ID: "gid://shopify/Product/2", Title: "Cedar Wood", Handle: "cedar", Status: "ACTIVE"},
		}},
		{Title: "FEMININO", Products: []shopify.Product{
			shared,
			{ID: "gid://shopify/Product/3", Title: "Vanilla", Handle: "vanilla", Status: "ACTIVE"},
		}},
	}

	summary, err := s.syncer.Run(context.Background(), ModeCollections)
	s.Require().NoError(err)

	s.Equal(DefaultCollectionTitles, s.source.titles)
	s.Require().Len(s.store.replaced, 1)
	written := s.store.replaced[0]
	s.Require().Len(written, 3)
	s.Equal(models.GenderMale, written[0].Gender, "first occurrence wins")

	s.Equal(3, summary.Total)
	s.Equal(1, summary.Duplicates)
	s.Equal(2, summary.ByGender[models.GenderMale])
	s.Equal(1, summary.ByGender[models.GenderFemale])
	s.Equal(1, summary.ByFamily[models.FamilyOriental])
	s.Len(s.notifier.summaries, 1)
}

func (s *SyncerSuite) TestProductsMode() {
	s.source.products = []shopify.Product{
		{ID: "gid://shopify/Product/7", Title: "Eau for Women", Handle: "eau", AvailableForSale: true},
	}

	summary, err := s.syncer.Run(context.Background(), ModeProducts)
	s.Require().NoError(err)
	s.Equal(ModeProducts, summary.Mode)
	s.Equal("7", s.store.replaced[0][0].ID)
	s.Equal(models.GenderFemale, s.store.replaced[0][0].Gender)
}

func (s *SyncerSuite) TestFetchErrorWritesNothing() {
	s.source.err = errors.New("status 502")

	_, err := s.syncer.Run(context.Background(), ModeProducts)
	s.Error(err)
	s.Empty(s.store.replaced)
	s.Len(s.notifier.failures, 1)
}

func (s *SyncerSuite) TestEmptyResultWritesNothing() {
	_, err := s.syncer.Run(context.Background(), ModeCollections)
	s.ErrorIs(err, ErrEmptyCatalog)
	s.Empty(s.store.replaced)
}

func (s *SyncerSuite) TestStoreFailureIsReported() {
	s.source.products = []shopify.Product{{ID: "gid://shopify/Product/7", Title: "X"}}
	s.store.err = errors.New("disk full")

	_, err := s.syncer.Run(context.Background(), ModeProducts)
	s.Error(err)
	s.Len(s.notifier.failures, 1)
	s.Empty(s.notifier.summaries)
}

func (s *SyncerSuite) TestUnknownMode() {
	_, err := s.syncer.Run(context.Background(), Mode("orders"))
	s.Error(err)
}

func TestSyncerSuite(t *testing.T) {
	suite.Run(t, new(SyncerSuite))
}

func TestNewSyncer_NilNotifier(t *testing.T) {
	src := &fakeSource{products: []shopify.Product{{ID: "1", Title: "X"}}}
	store := &fakeStore{}
	_, err := NewSyncer(src, store, nil, Options{}).Run(context.Background(), ModeProducts)
	require.NoError(t, err)
	assert.Len(t, store.replaced, 1)
}
