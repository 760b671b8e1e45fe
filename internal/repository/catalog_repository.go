package repository

import (
	"context"
	"sync"

	"catalog-service/internal/domain"
)

// CatalogRepository defines the interface for the process-lifetime catalog
type CatalogRepository interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Increment(ctx context.Context, id int) (Result, error)
	Decrement(ctx context.Context, id int) (Result, error)
	AddItem(ctx context.Context, name, priceText string) (Result, error)
	DeleteItem(ctx context.Context, id int) (Result, error)
	Reset(ctx context.Context) (domain.Snapshot, error)
}

// Result describes one applied (or skipped) transition and the catalog right after it
type Result struct {
	Item     domain.Item
	Applied  bool
	Snapshot domain.Snapshot
}

// InMemoryCatalogRepository keeps the catalog in memory for the lifetime of the process.
// Nothing is persisted: a new repository always starts from the seed.
type InMemoryCatalogRepository struct {
	mu      sync.Mutex
	catalog *domain.Catalog
	seed    []domain.Item
}

// NewCatalogRepository creates a repository seeded with domain.DefaultItems
func NewCatalogRepository() *InMemoryCatalogRepository {
	return NewCatalogRepositoryWithSeed(domain.DefaultItems())
}

// NewCatalogRepositoryWithSeed creates a repository that starts from, and resets to, the given items
func NewCatalogRepositoryWithSeed(seed []domain.Item) *InMemoryCatalogRepository {
	kept := make([]domain.Item, len(seed))
	copy(kept, seed)
	return &InMemoryCatalogRepository{
		catalog: domain.NewCatalog(kept...),
		seed:    kept,
	}
}

func (r *InMemoryCatalogRepository) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.catalog.Snapshot(), nil
}

func (r *InMemoryCatalogRepository) Increment(ctx context.Context, id int) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := r.catalog.Increment(id)
	return r.result(id, applied), nil
}

func (r *InMemoryCatalogRepository) Decrement(ctx context.Context, id int) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := r.catalog.Decrement(id)
	return r.result(id, applied), nil
}

func (r *InMemoryCatalogRepository) AddItem(ctx context.Context, name, priceText string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.catalog.AddItem(name, priceText)
	if err != nil {
		return Result{}, err
	}
	return Result{Item: item, Applied: true, Snapshot: r.catalog.Snapshot()}, nil
}

func (r *InMemoryCatalogRepository) DeleteItem(ctx context.Context, id int) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, applied := r.catalog.DeleteItem(id)
	return Result{Item: removed, Applied: applied, Snapshot: r.catalog.Snapshot()}, nil
}

// Reset discards every change and goes back to the seed, as a fresh start would
func (r *InMemoryCatalogRepository) Reset(ctx context.Context) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalog = domain.NewCatalog(r.seed...)
	return r.catalog.Snapshot(), nil
}

// result must be called with the lock held
func (r *InMemoryCatalogRepository) result(id int, applied bool) Result {
	item, _ := r.catalog.Find(id)
	return Result{Item: item, Applied: applied, Snapshot: r.catalog.Snapshot()}
}
