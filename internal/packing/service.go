package packing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service stores and edits saved checklists.
type Service struct {
	repo Repository
}

// NewService creates a new checklist service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create saves a freshly generated list as the checklist of a trip.
func (s *Service) Create(ctx context.Context, userID, tripID string, items List) (*Checklist, error) {
	now := time.Now()
	c := &Checklist{
		ID:        "pkl_" + uuid.New().String()[:22],
		TripID:    tripID,
		UserID:    userID,
		Items:     items.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating packing list: %w", err)
	}

	return c, nil
}

// Get retrieves the checklist of a user's trip.
func (s *Service) Get(ctx context.Context, userID, tripID string) (*Checklist, error) {
	return s.repo.GetByTrip(ctx, userID, tripID)
}

// maxModifyAttempts bounds how often Modify reloads after a concurrent write.
const maxModifyAttempts = 5

// Modify loads a checklist, applies fn and saves the result. Nothing is
// saved if fn returns an error. When another write lands first, fn is
// applied again to the fresh checklist, so fn must not depend on state
// captured from an earlier attempt.
func (s *Service) Modify(ctx context.Context, userID, tripID string, fn func(c *Checklist) error) (*Checklist, error) {
	for attempt := 1; ; attempt++ {
		c, err := s.repo.GetByTrip(ctx, userID, tripID)
		if err != nil {
			return nil, err
		}

		if err := fn(c); err != nil {
			return nil, err
		}

		c.UpdatedAt = time.Now()
		err = s.repo.Update(ctx, c)
		switch {
		case err == nil:
			return c, nil
		case errors.Is(err, ErrChecklistConflict) && attempt < maxModifyAttempts:
			continue
		default:
			return nil, fmt.Errorf("updating packing list: %w", err)
		}
	}
}

// Delete removes the checklist of a trip.
func (s *Service) Delete(ctx context.Context, userID, tripID string) error {
	return s.repo.DeleteByTrip(ctx, userID, tripID)
}
