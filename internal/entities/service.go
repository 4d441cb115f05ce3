package entities

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"careport/internal/api"
	"careport/internal/log"
)

// ErrNotFound is returned when a record does not exist, either on the
// backend or in the demo dataset.
var ErrNotFound = errors.New("entities: not found")

// Entity is any record the generic service can manage.
type Entity interface {
	EntityID() string
}

// Service provides CRUD access to one record collection. When Demo is
// enabled, any backend failure is answered from a seeded in-memory dataset
// so the portal stays usable without a backend; every such answer is logged
// at warn level so demo data is never mistaken for live data.
type Service[T Entity] struct {
	client   *api.Client
	resource string
	demo     bool
	withID   func(T, string) T

	mu   sync.Mutex
	seed []T
}

// Config describes one collection.
type Config[T Entity] struct {
	// Client talks to the backend (required).
	Client *api.Client
	// Resource is the collection path, e.g. "/providers".
	Resource string
	// Demo enables the in-memory fallback dataset.
	Demo bool
	// Seed is the fallback dataset used in demo mode.
	Seed []T
	// WithID returns a copy of the entity with its id set, used when the
	// demo dataset mints ids for created records.
	WithID func(T, string) T
}

func NewService[T Entity](cfg Config[T]) *Service[T] {
	seed := make([]T, len(cfg.Seed))
	copy(seed, cfg.Seed)
	return &Service[T]{
		client:   cfg.Client,
		resource: cfg.Resource,
		demo:     cfg.Demo,
		withID:   cfg.WithID,
		seed:     seed,
	}
}

// List returns every record in the collection.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	err := s.client.Get(ctx, s.resource, nil, &out)
	if err == nil {
		return out, nil
	}
	if !s.fallback(err, "list") {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out = make([]T, len(s.seed))
	copy(out, s.seed)
	return out, nil
}

// Get returns one record by id.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := s.client.Get(ctx, s.resource+"/"+id, nil, &out)
	if err == nil {
		return out, nil
	}
	if !s.fallback(err, "get") {
		return out, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.seed {
		if record.EntityID() == id {
			return record, nil
		}
	}
	return out, ErrNotFound
}

// Create adds a record and returns it as stored. In demo mode the record
// gets a minted id.
func (s *Service[T]) Create(ctx context.Context, record T) (T, error) {
	var out T
	err := s.client.Post(ctx, s.resource, record, &out)
	if err == nil {
		return out, nil
	}
	if !s.fallback(err, "create") {
		return out, err
	}

	created := s.withID(record, uuid.NewString())
	s.mu.Lock()
	s.seed = append(s.seed, created)
	s.mu.Unlock()
	return created, nil
}

// Update replaces the record with the given id.
func (s *Service[T]) Update(ctx context.Context, id string, record T) (T, error) {
	var out T
	err := s.client.Put(ctx, s.resource+"/"+id, record, &out)
	if err == nil {
		return out, nil
	}
	if !s.fallback(err, "update") {
		return out, err
	}

	updated := s.withID(record, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.seed {
		if existing.EntityID() == id {
			s.seed[i] = updated
			return updated, nil
		}
	}
	return out, ErrNotFound
}

// Delete removes the record with the given id. In demo mode deleting a
// record that is not in the dataset is not an error, matching the backend's
// idempotent delete.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	err := s.client.Delete(ctx, s.resource+"/"+id)
	if err == nil {
		return nil
	}
	if !s.fallback(err, "delete") {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.seed {
		if existing.EntityID() == id {
			s.seed = append(s.seed[:i], s.seed[i+1:]...)
			break
		}
	}
	return nil
}

// fallback reports whether the demo dataset should answer for err. A 401
// never falls back: an expired session must surface so the app can tear
// down, not silently degrade to demo data.
func (s *Service[T]) fallback(err error, op string) bool {
	if !s.demo || errors.Is(err, api.ErrSessionExpired) {
		return false
	}
	log.Warn(log.CatEntities, "serving demo data", "resource", s.resource, "op", op, "cause", err.Error())
	return true
}
