package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"molove/internal/models"
)

// LookbookRepository manages lookbook entries, ordered by Position.
type LookbookRepository interface {
	GetAll() ([]models.LookbookEntry, error)
	Create(entry *models.LookbookEntry) error
	Update(entry *models.LookbookEntry) error
	Delete(id string) error
}

// GORMLookbookRepository is a GORM implementation of LookbookRepository.
type GORMLookbookRepository struct {
	db *gorm.DB
}

// NewGORMLookbookRepository creates a new instance of GORMLookbookRepository.
func NewGORMLookbookRepository(db *gorm.DB) *GORMLookbookRepository {
	return &GORMLookbookRepository{db: db}
}

// GetAll returns every lookbook entry ordered by position.
func (r *GORMLookbookRepository) GetAll() ([]models.LookbookEntry, error) {
	var entries []models.LookbookEntry
	if err := r.db.Order("position ASC").Find(&entries).Error; err != nil {
		return nil, translateError("get lookbook", err)
	}
	return entries, nil
}

// Create inserts a new entry.
func (r *GORMLookbookRepository) Create(entry *models.LookbookEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return translateError("create lookbook entry", err)
	}
	return nil
}

// Update modifies an existing entry.
func (r *GORMLookbookRepository) Update(entry *models.LookbookEntry) error {
	res := r.db.Save(entry)
	if res.Error != nil {
		return translateError("update lookbook entry "+entry.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("update lookbook entry "+entry.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes an entry by its ID.
func (r *GORMLookbookRepository) Delete(id string) error {
	res := r.db.Delete(&models.LookbookEntry{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete lookbook entry "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("delete lookbook entry "+id, gorm.ErrRecordNotFound)
	}
	return nil
}

// MemoryLookbookRepository is an in-memory LookbookRepository.
type MemoryLookbookRepository struct {
	mu      sync.RWMutex
	entries map[string]models.LookbookEntry
}

// NewMemoryLookbookRepository creates an empty MemoryLookbookRepository.
func NewMemoryLookbookRepository() *MemoryLookbookRepository {
	return &MemoryLookbookRepository{entries: make(map[string]models.LookbookEntry)}
}

// GetAll returns every entry ordered by position.
func (r *MemoryLookbookRepository) GetAll() ([]models.LookbookEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.LookbookEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// Create inserts a new entry.
func (r *MemoryLookbookRepository) Create(entry *models.LookbookEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries[entry.ID] = *entry
	return nil
}

// Update modifies an existing entry.
func (r *MemoryLookbookRepository) Update(entry *models.LookbookEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.ID]; !ok {
		return fmt.Errorf("update lookbook entry %s: %w", entry.ID, ErrNotFound)
	}
	r.entries[entry.ID] = *entry
	return nil
}

// Delete removes an entry by its ID.
func (r *MemoryLookbookRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("delete lookbook entry %s: %w", id, ErrNotFound)
	}
	delete(r.entries, id)
	return nil
}
