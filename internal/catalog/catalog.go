package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/metrics"
	"github.com/example/scentquiz/internal/models"
)

// Stats summarizes the loaded snapshot.
type Stats struct {
	Total     int                   `json:"total"`
	Available int                   `json:"available"`
	ByGender  map[models.Gender]int `json:"by_gender"`
	ByFamily  map[models.Family]int `json:"by_family"`
	LoadedAt  time.Time             `json:"loaded_at"`
}

// Catalog is a reloadable, read-only view of the product feed.
type Catalog struct {
	store Store

	mu       sync.RWMutex
	products []models.Product
	index    map[string]int
	loadedAt time.Time
}

func New(store Store) *Catalog {
	return &Catalog{store: store, products: []models.Product{}, index: map[string]int{}}
}

// Reload replaces the snapshot from the store. On failure the previous
// snapshot stays in place.
func (c *Catalog) Reload(ctx context.Context) error {
	products, err := c.store.Load(ctx)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("failure").Inc()
		logging.Error().Err(err).Msg("catalog reload failed, keeping previous snapshot")
		return err
	}
	c.Set(products)
	metrics.CatalogReloads.WithLabelValues("success").Inc()
	logging.Info().Int("products", len(products)).Msg("catalog loaded")
	return nil
}

// Set installs products as the current snapshot.
func (c *Catalog) Set(products []models.Product) {
	products = Normalize(products)
	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	c.mu.Lock()
	c.products = products
	c.index = index
	c.loadedAt = time.Now()
	c.mu.Unlock()

	metrics.CatalogProducts.Set(float64(len(products)))
}

// Products returns the current snapshot. Callers must not modify it.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

func (c *Catalog) Get(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Stats{
		Total:    len(c.products),
		ByGender: map[models.Gender]int{},
		ByFamily: map[models.Family]int{},
		LoadedAt: c.loadedAt,
	}
	for _, p := range c.products {
		if p.Available {
			st.Available++
		}
		st.ByGender[p.Gender]++
		st.ByFamily[p.OlfactoryFamily]++
	}
	return st
}
