package reservation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memoryRepository is an in-process Repository used by the service tests.
type memoryRepository struct {
	mu     sync.Mutex
	rows   map[string]*Reservation
	nextID int

	updates int
	// beforeUpdate runs inside UpdateStatus before the compare-and-set, to simulate a concurrent writer.
	beforeUpdate func(id string)
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[string]*Reservation)}
}

func (m *memoryRepository) Create(_ context.Context, r *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.nextID)
	r.UserName = "user-" + r.UserID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memoryRepository) GetByID(_ context.Context, id string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryRepository) List(_ context.Context, filter Filter) ([]*Reservation, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Reservation
	for _, r := range m.rows {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.DateFrom != "" && r.Date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && r.Date > filter.DateTo {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (m *memoryRepository) ListByStatuses(_ context.Context, statuses []Status) ([]*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Reservation
	for _, r := range m.rows {
		for _, st := range statuses {
			if r.Status == st {
				cp := *r
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (m *memoryRepository) UpdateStatus(_ context.Context, id string, from, to Status, reason string) (bool, error) {
	if m.beforeUpdate != nil {
		m.beforeUpdate(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	r.RejectionReason = reason
	r.UpdatedAt = time.Now()
	m.updates++
	return true, nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepository) CountByStatus(_ context.Context) (map[Status]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[Status]int, len(AllStatuses))
	for _, st := range AllStatuses {
		counts[st] = 0
	}
	for _, r := range m.rows {
		counts[r.Status]++
	}
	return counts, nil
}

// put stores a row directly, bypassing the service.
func (m *memoryRepository) put(r Reservation) *Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if r.ID == "" {
		r.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.nextID)
	}
	m.rows[r.ID] = &r
	cp := r
	return &cp
}

func (m *memoryRepository) setStatus(id string, st Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[id].Status = st
}
