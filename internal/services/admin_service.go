package services

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"molove/internal/models"
	"molove/internal/repositories"
)

// ErrOperationInFlight is returned when a second mutation is issued for a
// product whose previous mutation has not settled yet.
var ErrOperationInFlight = errors.New("операция для этого товара уже выполняется")

// Status filter values for the admin list.
const (
	StatusAll       = "all"
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Sort directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListOptions select the client-side view over the loaded snapshot. Search
// and status compose; sort applies after filtering.
type ListOptions struct {
	Search string
	Status string
	Sort   string
	Order  string
}

// NextSort implements the column-toggle rule: clicking the current sort
// column reverses the direction, clicking a different column resets to
// ascending.
func NextSort(field, order, clicked string) (string, string) {
	if clicked == field {
		if order == OrderAsc {
			return field, OrderDesc
		}
		return field, OrderAsc
	}
	return clicked, OrderAsc
}

// AdminService backs the admin product screen. It holds the last loaded
// snapshot (reloads are the sole consistency mechanism), applies search and
// sort client-side without new remote queries, and guards each product
// against concurrent mutations.
type AdminService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate

	mu       sync.Mutex
	snapshot []models.Product
	inFlight map[string]bool
}

// NewAdminService creates a new AdminService.
func NewAdminService(repo repositories.ProductRepository) *AdminService {
	return &AdminService{
		repo:     repo,
		validate: validator.New(),
		inFlight: make(map[string]bool),
	}
}

// Reload fetches the full product list from the store and replaces the
// snapshot. The reload is the ground truth after every mutation.
func (s *AdminService) Reload() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.snapshot = products
	s.mu.Unlock()
	return products, nil
}

// List applies the view options over the current snapshot, loading it first
// when empty. No remote query is issued for filtering or sorting.
func (s *AdminService) List(opts ListOptions) ([]models.Product, error) {
	s.mu.Lock()
	loaded := s.snapshot != nil
	products := make([]models.Product, len(s.snapshot))
	copy(products, s.snapshot)
	s.mu.Unlock()

	if !loaded {
		var err error
		if products, err = s.Reload(); err != nil {
			return nil, err
		}
	}

	products = filterAdmin(products, opts.Search, opts.Status)
	sortAdmin(products, opts.Sort, opts.Order)
	return products, nil
}

// Save creates the product when it has no identity, updates it otherwise,
// then reloads the list. Validation runs before any remote call.
func (s *AdminService) Save(product *models.Product) (*models.Product, error) {
	if err := s.validate.Struct(product); err != nil {
		return nil, err
	}
	if product.Sizes != nil {
		product.TotalStock = product.TotalFromSizes()
	}

	if product.ID == "" {
		if err := s.repo.Create(product); err != nil {
			return nil, err
		}
	} else {
		if err := s.begin(product.ID); err != nil {
			return nil, err
		}
		defer s.end(product.ID)
		if err := s.repo.Update(product); err != nil {
			return nil, err
		}
	}

	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product and reloads the list on success. On failure the
// snapshot is left untouched so the screen keeps showing the last known
// state alongside the error message.
func (s *AdminService) Delete(id string) error {
	if err := s.begin(id); err != nil {
		return err
	}
	defer s.end(id)

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	_, err := s.Reload()
	return err
}

// TogglePublished flips the published flag of one product and reloads.
func (s *AdminService) TogglePublished(id string) (*models.Product, error) {
	if err := s.begin(id); err != nil {
		return nil, err
	}
	defer s.end(id)

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Published = !product.Published
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return product, nil
}

// begin marks a product as having a mutation in flight; a second concurrent
// mutation for the same id is rejected rather than queued.
func (s *AdminService) begin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[id] {
		return ErrOperationInFlight
	}
	s.inFlight[id] = true
	return nil
}

func (s *AdminService) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

func filterAdmin(products []models.Product, search, status string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Article), search) {
			continue
		}
		switch status {
		case StatusPublished:
			if !p.Published {
				continue
			}
		case StatusDraft:
			if p.Published {
				continue
			}
		}
		matched = append(matched, p)
	}
	return matched
}

func sortAdmin(products []models.Product, field, order string) {
	if field == "" {
		return
	}
	desc := order == OrderDesc

	less := func(a, b models.Product) bool { return a.ID < b.ID }
	switch field {
	case "name":
		less = func(a, b models.Product) bool { return a.Name < b.Name }
	case "article":
		less = func(a, b models.Product) bool { return a.Article < b.Article }
	case "price":
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case "total_stock":
		less = func(a, b models.Product) bool { return a.TotalStock < b.TotalStock }
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}
