package main

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// errNoteMissing is returned by the store and mapped to not_found by the
// renderer, so handlers can pass it through untouched.
var errNoteMissing = errors.New("note does not exist")

type note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Priority  int       `json:"priority"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type noteStore struct {
	mu     sync.RWMutex
	seq    int64
	notes  map[int64]note
	titles map[string]int64
	now    func() time.Time
}

func newNoteStore() *noteStore {
	return &noteStore{
		notes:  make(map[int64]note),
		titles: make(map[string]int64),
		now:    time.Now,
	}
}

func (s *noteStore) Create(ctx context.Context, n note) (note, error) {
	if err := ctx.Err(); err != nil {
		return note{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(n.Title)
	if _, ok := s.titles[key]; ok {
		return note{}, apierror.NewInvalidResource(map[string][]string{
			"title": {"has already been taken"},
		}, "note is invalid")
	}
	s.seq++
	n.ID = s.seq
	n.CreatedAt = s.now().UTC()
	s.notes[n.ID] = n
	s.titles[key] = n.ID
	return n, nil
}

func (s *noteStore) Get(ctx context.Context, id int64) (note, error) {
	if err := ctx.Err(); err != nil {
		return note{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	if !ok {
		return note{}, errNoteMissing
	}
	return n, nil
}

func (s *noteStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return errNoteMissing
	}
	delete(s.notes, id)
	delete(s.titles, strings.ToLower(n.Title))
	return nil
}

// List returns notes ordered by id, at most limit of them, starting after
// the given id.
func (s *noteStore) List(ctx context.Context, after int64, limit int) ([]note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		return []note{}, nil
	}
	out := make([]note, 0, min(limit, len(s.notes)))
	for _, n := range s.notes {
		if n.ID > after {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b note) int { return cmp.Compare(a.ID, b.ID) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
