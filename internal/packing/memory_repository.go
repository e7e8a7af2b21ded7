package packing

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu         sync.RWMutex
	checklists map[string]*Checklist // keyed by trip ID
}

// NewInMemoryRepository creates a new in-memory checklist repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		checklists: make(map[string]*Checklist),
	}
}

// GetByTrip retrieves the checklist of a user's trip.
func (r *InMemoryRepository) GetByTrip(_ context.Context, userID, tripID string) (*Checklist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.checklists[tripID]
	if !ok || c.UserID != userID {
		return nil, ErrChecklistNotFound
	}

	return copyChecklist(c), nil
}

// Create stores a new checklist.
func (r *InMemoryRepository) Create(_ context.Context, c *Checklist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.checklists[c.TripID]; ok {
		return ErrChecklistExists
	}

	r.checklists[c.TripID] = copyChecklist(c)
	return nil
}

// Update replaces an existing checklist unless it changed since c was read.
func (r *InMemoryRepository) Update(_ context.Context, c *Checklist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.checklists[c.TripID]
	if !ok || existing.ID != c.ID {
		return ErrChecklistNotFound
	}
	if existing.Version != c.Version {
		return ErrChecklistConflict
	}

	c.Version++
	r.checklists[c.TripID] = copyChecklist(c)
	return nil
}

// DeleteByTrip removes the checklist of a trip.
func (r *InMemoryRepository) DeleteByTrip(_ context.Context, userID, tripID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.checklists[tripID]; ok && c.UserID == userID {
		delete(r.checklists, tripID)
	}
	return nil
}

func copyChecklist(c *Checklist) *Checklist {
	cpy := *c
	cpy.Items = c.Items.Clone()
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
