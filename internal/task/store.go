package task

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
)

// Persister is the single slot holding the whole collection. Load and Save
// always move the complete ordered collection.
type Persister interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
}

// Store owns the canonical ordered collection and writes it out after every
// mutation.
type Store struct {
	tasks   []Task
	p       Persister
	log     *slog.Logger
	now     func() time.Time
	saveErr error
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open loads the collection from p. A malformed collection is logged and the
// store starts empty; any other load error is returned so the caller does not
// overwrite data it could not read.
func Open(p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		p:   p,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := p.Load()
	switch {
	case errors.Is(err, ErrMalformed):
		s.log.Warn("stored tasks unreadable, starting empty", "error", err)
		tasks = nil
	case err != nil:
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = tasks
	s.log.Debug("tasks loaded", "count", len(s.tasks))
	return s, nil
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id int64) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	return s.tasks[i], nil
}

// Create appends a new task. Empty title and description are accepted.
func (s *Store) Create(title, description string) Task {
	now := s.now().UTC()
	t := Task{
		ID:           s.nextID(now),
		Title:        title,
		Description:  description,
		Status:       StatusNew,
		CreationDate: civil.DateOf(now),
	}
	s.tasks = append(s.tasks, t)
	s.log.Debug("task created", "id", t.ID)
	s.persist()
	return t
}

// Update overwrites the stored task with the same id, keeping its creation
// date. It never inserts; the result reports whether a task was replaced.
func (s *Store) Update(t Task) bool {
	i := s.index(t.ID)
	if i < 0 {
		s.log.Debug("update skipped, unknown id", "id", t.ID)
		s.persist()
		return false
	}
	t.CreationDate = s.tasks[i].CreationDate
	s.tasks[i] = t
	s.persist()
	return true
}

func (s *Store) Delete(id int64) bool {
	i := s.index(id)
	if i < 0 {
		s.log.Debug("delete skipped, unknown id", "id", id)
		s.persist()
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.persist()
	return true
}

// ToggleStatus moves a task one step along Status.Next.
func (s *Store) ToggleStatus(id int64) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		s.log.Debug("toggle skipped, unknown id", "id", id)
		s.persist()
		return Task{}, false
	}
	s.tasks[i].Status = s.tasks[i].Status.Next()
	s.persist()
	return s.tasks[i], true
}

// SaveErr returns the error from the most recent write, or nil.
func (s *Store) SaveErr() error {
	return s.saveErr
}

func (s *Store) persist() {
	s.saveErr = s.p.Save(s.Tasks())
	if s.saveErr != nil {
		s.log.Warn("saving tasks failed", "error", s.saveErr)
	}
}

func (s *Store) index(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID is the creation instant in Unix milliseconds, bumped past the
// largest existing id when the clock has not advanced.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}
