package record

import (
	"context"
	"fmt"
	"strings"
)

// maxIDAttempts is how many collisions nextID tolerates beyond the number of
// stored records. A counter-based generator can run into each stored ID at
// most once, so seeded IDs it would produce never exhaust the budget.
const maxIDAttempts = 3

// listYieldEvery is how many records List scans between context checks.
var listYieldEvery = 1024

// Store is the concurrent in-memory record store.
//
// The zero value is not usable; construct with New.
type Store struct {
	mu      chanMutex
	records []Record
	index   map[string]int // id -> position in records
	clock   *Clock
	ids     IDGenerator

	seed []Record
}

// Option configures a Store at construction.
type Option func(*Store)

// WithIDGenerator replaces the default UUIDGenerator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithSeed supplies the initial record collection.
//
// Seed records keep their order. Their Seq values are reassigned; an empty ID
// is filled from the generator. Multiple WithSeed options append.
func WithSeed(records ...Record) Option {
	return func(s *Store) {
		s.seed = append(s.seed, records...)
	}
}

// New creates a Store.
//
// Seed records are validated with the same rules as Create. Returns a
// *ValidationError or ErrDuplicateID (wrapped with the seed position) if any
// seed record is rejected; no store is returned in that case.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		mu:    newChanMutex(),
		index: make(map[string]int),
		clock: NewClock(),
		ids:   UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(s)
	}

	seed := s.seed
	s.seed = nil
	s.records = make([]Record, 0, len(seed))
	for i, rec := range seed {
		if err := validate(rec.Name, rec.Category); err != nil {
			return nil, fmt.Errorf("seed[%d]: %w", i, err)
		}
		if rec.ID == "" {
			id, err := s.nextID()
			if err != nil {
				return nil, fmt.Errorf("seed[%d]: %w", i, err)
			}
			rec.ID = id
		} else if _, exists := s.index[rec.ID]; exists {
			return nil, fmt.Errorf("seed[%d]: %w: %s", i, ErrDuplicateID, rec.ID)
		}
		s.insert(rec)
	}

	return s, nil
}

// Create validates req, assigns an ID and sequence number, stores the new
// record and returns a copy of it.
//
// Validation happens before the lock is taken; a rejected request leaves the
// store unchanged.
func (s *Store) Create(ctx context.Context, req CreateRequest) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, &CancelledError{Op: "create", Cause: err}
	}
	if err := validate(req.Name, req.Category); err != nil {
		return Record{}, err
	}

	if err := s.mu.Lock(ctx); err != nil {
		return Record{}, &CancelledError{Op: "create", Cause: err}
	}
	defer s.mu.Unlock()

	id, err := s.nextID()
	if err != nil {
		return Record{}, err
	}
	rec := s.insert(Record{ID: id, Name: req.Name, Category: req.Category})
	return rec, nil
}

// Get returns the record with the given id. The boolean is false if no such
// record exists; that is not an error.
func (s *Store) Get(ctx context.Context, id string) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, &CancelledError{Op: "get", Cause: err}
	}

	if err := s.mu.Lock(ctx); err != nil {
		return Record{}, false, &CancelledError{Op: "get", Cause: err}
	}
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return Record{}, false, nil
	}
	return s.records[pos], true, nil
}

// List returns the records matching filter in insertion order.
//
// The result is a new slice owned by the caller and is never nil. It does not
// change when the store changes later.
func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &CancelledError{Op: "list", Cause: err}
	}

	if err := s.mu.Lock(ctx); err != nil {
		return nil, &CancelledError{Op: "list", Cause: err}
	}
	defer s.mu.Unlock()

	if filter.MatchesAll() {
		out := make([]Record, len(s.records))
		copy(out, s.records)
		return out, nil
	}

	out := make([]Record, 0)
	for i, rec := range s.records {
		if i > 0 && i%listYieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &CancelledError{Op: "list", Cause: err}
			}
		}
		if filter.Match(rec.Category) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Len returns the number of records in the store.
func (s *Store) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &CancelledError{Op: "len", Cause: err}
	}

	if err := s.mu.Lock(ctx); err != nil {
		return 0, &CancelledError{Op: "len", Cause: err}
	}
	defer s.mu.Unlock()

	return len(s.records), nil
}

// insert appends rec with the next seq. Caller holds the lock (or owns s
// exclusively during New).
func (s *Store) insert(rec Record) Record {
	rec.Seq = s.clock.Next()
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return rec
}

// nextID asks the generator for an ID not yet in the store.
func (s *Store) nextID() (string, error) {
	var id string
	attempts := len(s.index) + maxIDAttempts
	for attempt := 0; attempt < attempts; attempt++ {
		id = s.ids.Generate()
		if id == "" {
			continue
		}
		if _, exists := s.index[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: generator returned %q after %d attempts", ErrDuplicateID, id, attempts)
}

func validate(name, category string) error {
	if strings.TrimSpace(name) == "" {
		return newEmptyFieldError(FieldName)
	}
	if strings.TrimSpace(category) == "" {
		return newEmptyFieldError(FieldCategory)
	}
	return nil
}
