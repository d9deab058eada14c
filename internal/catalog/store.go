// Package catalog loads the product feed and serves it as an in-memory snapshot.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/models"
)

// Store reads and replaces the whole product catalog.
type Store interface {
	Load(ctx context.Context) ([]models.Product, error)
	Replace(ctx context.Context, products []models.Product) error
}

// FileStore keeps the catalog as a JSON array on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) ([]models.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", s.path, err)
	}

	return Normalize(products), nil
}

// Replace writes the catalog to a temp file next to the target and renames it
// over the target, so readers never see a partial feed.
func (s *FileStore) Replace(_ context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp catalog: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace catalog %s: %w", s.path, err)
	}
	return nil
}

// Normalize applies model defaults, drops entries without an id and keeps the
// first of duplicate ids.
func Normalize(products []models.Product) []models.Product {
	log := logging.With("catalog")

	out := make([]models.Product, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			log.Warn().Str("name", p.Name).Msg("skipping catalog entry without id")
			continue
		}
		if _, dup := seen[p.ID]; dup {
			log.Warn().Str("id", p.ID).Msg("skipping duplicate catalog entry")
			continue
		}
		seen[p.ID] = struct{}{}
		p.ApplyDefaults()
		out = append(out, p)
	}
	return out
}

// DBStore mirrors the catalog in the catalog_products table.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Load(ctx context.Context) ([]models.Product, error) {
	var rows []models.CatalogProduct
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load catalog rows: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Product())
	}
	return products, nil
}

func (s *DBStore) Replace(ctx context.Context, products []models.Product) error {
	rows := make([]models.CatalogProduct, 0, len(products))
	for i, p := range products {
		rows = append(rows, models.NewCatalogProduct(p, i))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CatalogProduct{}).Error; err != nil {
			return fmt.Errorf("clear catalog rows: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("insert catalog rows: %w", err)
		}
		return nil
	})
}

// MultiStore writes to every store in order and loads from the first.
type MultiStore struct {
	stores []Store
}

func NewMultiStore(stores ...Store) *MultiStore {
	return &MultiStore{stores: stores}
}

func (m *MultiStore) Load(ctx context.Context) ([]models.Product, error) {
	if len(m.stores) == 0 {
		return nil, errors.New("no catalog stores configured")
	}
	return m.stores[0].Load(ctx)
}

func (m *MultiStore) Replace(ctx context.Context, products []models.Product) error {
	for _, s := range m.stores {
		if err := s.Replace(ctx, products); err != nil {
			return err
		}
	}
	return nil
}
