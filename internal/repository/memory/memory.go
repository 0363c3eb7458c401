// Package memory holds process-local repositories used for development and
// tests. State lives in the store value, never in package variables.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/repository"
)

type ReservationStore struct {
	mu      sync.RWMutex
	periods map[string][]domain.ReservationPeriod

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		periods: make(map[string][]domain.ReservationPeriod),
		locks:   make(map[string]*sync.Mutex),
	}
}

var _ repository.ReservationRepository = (*ReservationStore)(nil)

func (s *ReservationStore) ListByResource(ctx context.Context, resourceID string) ([]domain.ReservationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ReservationPeriod, len(s.periods[resourceID]))
	copy(out, s.periods[resourceID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *ReservationStore) GetByID(ctx context.Context, resourceID, id string) (*domain.ReservationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.periods[resourceID] {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
}

func (s *ReservationStore) Append(ctx context.Context, p *domain.ReservationPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.periods[p.ResourceID] {
		if existing.ID == p.ID {
			return fmt.Errorf("reservation %s already exists", p.ID)
		}
	}
	s.periods[p.ResourceID] = append(s.periods[p.ResourceID], *p)
	return nil
}

func (s *ReservationStore) UpdateStatus(ctx context.Context, resourceID, id string, status domain.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	periods := s.periods[resourceID]
	for i := range periods {
		if periods[i].ID == id {
			periods[i].Status = status
			periods[i].UpdatedOn = time.Now()
			return nil
		}
	}
	return fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
}

func (s *ReservationStore) WithResourceLock(ctx context.Context, resourceID string, fn func(ctx context.Context, repo repository.ReservationRepository) error) error {
	lock := s.resourceLock(resourceID)
	lock.Lock()
	defer lock.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, s)
}

func (s *ReservationStore) CompleteEndedBefore(ctx context.Context, day time.Time) (int64, error) {
	cutoff := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, periods := range s.periods {
		for i := range periods {
			p := &periods[i]
			end := time.Date(p.EndDate.Year(), p.EndDate.Month(), p.EndDate.Day(), 0, 0, 0, 0, time.UTC)
			if p.Status == domain.ReservationStatusAccepted && end.Before(cutoff) {
				p.Status = domain.ReservationStatusCompleted
				p.UpdatedOn = time.Now()
				n++
			}
		}
	}
	return n, nil
}

func (s *ReservationStore) resourceLock(resourceID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[resourceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[resourceID] = l
	}
	return l
}

type ListingStore struct {
	mu       sync.RWMutex
	listings map[string]domain.Listing
}

func NewListingStore() *ListingStore {
	return &ListingStore{listings: make(map[string]domain.Listing)}
}

var _ repository.ListingRepository = (*ListingStore)(nil)

// Put inserts or replaces a listing.
func (s *ListingStore) Put(l domain.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ID] = l
}

func (s *ListingStore) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	return &l, nil
}
