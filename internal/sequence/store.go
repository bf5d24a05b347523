package sequence

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crown_transport/internal/models"
)

// MemoryStore keeps the counter in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	value int
	saves int
}

func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{value: initial}
}

func (m *MemoryStore) Load(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *MemoryStore) Save(_ context.Context, v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.saves++
	return nil
}

// Saves counts writes, for tests.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// counterRowID is the primary key of the single counter row.
const counterRowID = 1

// GormStore keeps the counter in the invoice_counters table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context) (int, error) {
	var row models.InvoiceCounter
	err := s.db.WithContext(ctx).First(&row, counterRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Value, nil
}

// Save upserts the row. The column only ever takes the greater value.
func (s *GormStore) Save(ctx context.Context, v int) error {
	row := models.InvoiceCounter{ID: counterRowID, Value: v}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Set{{
			Column: clause.Column{Name: "value"},
			Value:  gorm.Expr("GREATEST(invoice_counters.value, EXCLUDED.value)"),
		}, {
			Column: clause.Column{Name: "updated_at"},
			Value:  gorm.Expr("EXCLUDED.updated_at"),
		}},
	}).Create(&row).Error
}
