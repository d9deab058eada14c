package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/scentquiz/internal/catalog"
	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/metrics"
	"github.com/example/scentquiz/internal/models"
	"github.com/example/scentquiz/internal/shopify"
)

// Mode selects which remote listing a run reads.
type Mode string

const (
	ModeCollections Mode = "collections"
	ModeProducts    Mode = "products"
)

// ErrEmptyCatalog aborts a run that fetched no products.
var ErrEmptyCatalog = errors.New("sync fetched no products")

// DefaultCollectionTitles are the collections read in collections mode.
var DefaultCollectionTitles = []string{"MASCULINO", "FEMININO"}

// Source is the remote product listing.
type Source interface {
	FetchAllProducts(ctx context.Context, pageSize int) ([]shopify.Product, error)
	FetchCollections(ctx context.Context, titles []string, pageSize int) ([]shopify.Collection, error)
}

// Notifier receives run outcomes.
type Notifier interface {
	NotifyCatalogSync(ctx context.Context, summary *Summary) error
	NotifyCatalogSyncFailure(ctx context.Context, mode string, err error) error
}

type Options struct {
	PageSize         int
	CollectionTitles []string
	StorefrontURL    string
}

// Summary describes a successful run.
type Summary struct {
	Mode       Mode                  `json:"mode"`
	Total      int                   `json:"total"`
	Duplicates int                   `json:"duplicates"`
	ByGender   map[models.Gender]int `json:"by_gender"`
	ByFamily   map[models.Family]int `json:"by_family"`
	Duration   time.Duration         `json:"duration"`
}

type Syncer struct {
	source   Source
	store    catalog.Store
	notifier Notifier
	opts     Options
}

// NewSyncer wires a sync run. notifier may be nil.
func NewSyncer(source Source, store catalog.Store, notifier Notifier, opts Options) *Syncer {
	if len(opts.CollectionTitles) == 0 {
		opts.CollectionTitles = DefaultCollectionTitles
	}
	if opts.StorefrontURL == "" {
		opts.StorefrontURL = DefaultStorefrontURL
	}
	return &Syncer{source: source, store: store, notifier: notifier, opts: opts}
}

// Run fetches every remote product, maps it and replaces the catalog. Nothing
// is written unless the whole fetch succeeded with at least one product.
func (s *Syncer) Run(ctx context.Context, mode Mode) (*Summary, error) {
	log := logging.With("catalogsync")
	started := time.Now()
	log.Info().Str("mode", string(mode)).Msg("catalog sync started")

	summary, err := s.run(ctx, mode)
	if err != nil {
		metrics.CatalogSyncRuns.WithLabelValues(string(mode), "failure").Inc()
		log.Error().Err(err).Str("mode", string(mode)).Msg("catalog sync failed, catalog left untouched")
		if s.notifier != nil {
			if nerr := s.notifier.NotifyCatalogSyncFailure(ctx, string(mode), err); nerr != nil {
				log.Warn().Err(nerr).Msg("failed to send sync failure notification")
			}
		}
		return nil, err
	}

	summary.Duration = time.Since(started)
	metrics.CatalogSyncRuns.WithLabelValues(string(mode), "success").Inc()
	log.Info().
		Str("mode", string(mode)).
		Int("products", summary.Total).
		Int("duplicates", summary.Duplicates).
		Interface("by_gender", summary.ByGender).
		Interface("by_family", summary.ByFamily).
		Dur("duration", summary.Duration).
		Msg("catalog sync finished")

	if s.notifier != nil {
		if nerr := s.notifier.NotifyCatalogSync(ctx, summary); nerr != nil {
			log.Warn().Err(nerr).Msg("failed to send sync notification")
		}
	}
	return summary, nil
}

func (s *Syncer) run(ctx context.Context, mode Mode) (*Summary, error) {
	var products []models.Product
	var err error

	switch mode {
	case ModeCollections:
		products, err = s.fetchCollections(ctx)
	case ModeProducts:
		products, err = s.fetchProducts(ctx)
	default:
		return nil, fmt.Errorf("unknown sync mode %q", mode)
	}
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	unique, dups := dedupe(products)
	if err := s.store.Replace(ctx, unique); err != nil {
		return nil, fmt.Errorf("write catalog: %w", err)
	}

	summary := &Summary{
		Mode:       mode,
		Total:      len(unique),
		Duplicates: dups,
		ByGender:   map[models.Gender]int{},
		ByFamily:   map[models.Family]int{},
	}
	for _, p := range unique {
		summary.ByGender[p.Gender]++
		summary.ByFamily[p.OlfactoryFamily]++
	}
	return summary, nil
}

func (s *Syncer) fetchCollections(ctx context.Context) ([]models.Product, error) {
	collections, err := s.source.FetchCollections(ctx, s.opts.CollectionTitles, s.opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch collections: %w", err)
	}

	log := logging.With("catalogsync")
	var products []models.Product
	for _, c := range collections {
		gender := CollectionGender.Match(c.Title, nil)
		log.Info().Str("collection", c.Title).Str("gender", string(gender)).Int("products", len(c.Products)).Msg("mapping collection")
		for _, p := range c.Products {
			products = append(products, MapCollectionProduct(p, gender, s.opts.StorefrontURL))
		}
	}
	return products, nil
}

func (s *Syncer) fetchProducts(ctx context.Context) ([]models.Product, error) {
	remote, err := s.source.FetchAllProducts(ctx, s.opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	products := make([]models.Product, 0, len(remote))
	for _, p := range remote {
		products = append(products, MapProduct(p, s.opts.StorefrontURL))
	}
	return products, nil
}

// dedupe keeps the first product of each id.
func dedupe(products []models.Product) ([]models.Product, int) {
	seen := make(map[string]struct{}, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, len(products) - len(out)
}
