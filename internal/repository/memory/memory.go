// Package memory is an in-process implementation of the repository
// interfaces. It backs STORE_BACKEND=memory and the service and handler tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

type tables struct {
	institutes  map[int]model.Institute
	classes     map[int]model.Class
	sections    map[int]model.Section
	assignments map[int]model.Assignment
	letters     map[int]model.Letter
	registers   map[int]model.RegisterEntry
	shares      map[int]model.InstituteShare
	admins      map[int]model.Admin
	seq         int
}

func newTables() tables {
	return tables{
		institutes:  map[int]model.Institute{},
		classes:     map[int]model.Class{},
		sections:    map[int]model.Section{},
		assignments: map[int]model.Assignment{},
		letters:     map[int]model.Letter{},
		registers:   map[int]model.RegisterEntry{},
		shares:      map[int]model.InstituteShare{},
		admins:      map[int]model.Admin{},
	}
}

func (t tables) clone() tables {
	return tables{
		institutes:  maps.Clone(t.institutes),
		classes:     maps.Clone(t.classes),
		sections:    maps.Clone(t.sections),
		assignments: maps.Clone(t.assignments),
		letters:     maps.Clone(t.letters),
		registers:   maps.Clone(t.registers),
		shares:      maps.Clone(t.shares),
		admins:      maps.Clone(t.admins),
		seq:         t.seq,
	}
}

// DB holds all tables behind one mutex. Ids come from a single sequence.
type DB struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	t    tables
}

// New returns an empty database.
func New() *DB {
	return &DB{t: newTables()}
}

func (db *DB) nextID() int {
	db.t.seq++
	return db.t.seq
}

func now() time.Time {
	return time.Now().UTC()
}

// NewStore returns a repository.Store backed by a fresh in-memory database.
func NewStore() *repository.Store {
	return New().Store()
}

// Store exposes db through the repository interfaces.
func (db *DB) Store() *repository.Store {
	return &repository.Store{
		Institutes:  &instituteRepo{db},
		Classes:     &classRepo{db},
		Sections:    &sectionRepo{db},
		Assignments: &assignmentRepo{db},
		Letters:     &letterRepo{db},
		Registers:   &registerRepo{db},
		Shares:      &shareRepo{db},
		Admins:      &adminRepo{db},
		Reports:     &reportRepo{db},
		Tx:          &Transactor{db: db},
	}
}

type txKey struct{}

// Transactor serialises units of work and restores a snapshot of every
// table when the function fails.
type Transactor struct {
	db *DB
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.db.txMu.Lock()
	defer t.db.txMu.Unlock()

	t.db.mu.RLock()
	snapshot := t.db.t.clone()
	t.db.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.db.mu.Lock()
		t.db.t = snapshot
		t.db.mu.Unlock()
		return err
	}
	return nil
}
