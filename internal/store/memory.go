// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/wayfarer/internal/models"
)

// Memory is an in-process Repository for tests. Values are deep-copied on the
// way in and out so callers cannot mutate stored state.
type Memory struct {
	mu           sync.RWMutex
	destinations map[int]models.Destination
	lists        map[string]models.List
	users        map[string]models.User
	emails       map[string]string // lower-cased email -> user ID
	closed       bool
}

var _ Repository = (*Memory)(nil)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		destinations: make(map[int]models.Destination),
		lists:        make(map[string]models.List),
		users:        make(map[string]models.User),
		emails:       make(map[string]string),
	}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Memory) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *Memory) CountDestinations(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.destinations), nil
}

func (m *Memory) SeedDestinations(_ context.Context, dests []models.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range dests {
		m.destinations[d.CustomID] = copyDestination(d)
	}
	return nil
}

func (m *Memory) ListDestinations(_ context.Context) ([]models.Destination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Destination
	for _, d := range m.destinations {
		out = append(out, copyDestination(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomID < out[j].CustomID })
	return out, nil
}

func (m *Memory) GetDestination(_ context.Context, id int) (*models.Destination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.destinations[id]
	if !ok {
		return nil, ErrNotFound
	}
	d = copyDestination(d)
	return &d, nil
}

func (m *Memory) CreateList(_ context.Context, l *models.List) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lists[l.Name]; ok {
		return ErrExists
	}
	m.lists[l.Name] = copyList(*l)
	return nil
}

func (m *Memory) GetList(_ context.Context, name string) (*models.List, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lists[name]
	if !ok {
		return nil, ErrNotFound
	}
	l = copyList(l)
	return &l, nil
}

func (m *Memory) UpdateList(_ context.Context, name string, fn ListMutator) (*models.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateListLocked(name, fn)
}

func (m *Memory) updateListLocked(name string, fn ListMutator) (*models.List, error) {
	stored, ok := m.lists[name]
	if !ok {
		return nil, ErrNotFound
	}
	l := copyList(stored)
	if err := fn(&l); err != nil {
		return nil, err
	}
	l.Name = name
	m.lists[name] = copyList(l)
	return &l, nil
}

func (m *Memory) DeleteList(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lists[name]; !ok {
		return ErrNotFound
	}
	delete(m.lists, name)
	return nil
}

func (m *Memory) ListsByOwner(_ context.Context, userID string) ([]models.List, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.List{}
	for _, l := range m.lists {
		if l.CreatedBy == userID {
			out = append(out, copyList(l))
		}
	}
	sortListsByName(out)
	return out, nil
}

func (m *Memory) AllLists(_ context.Context) ([]models.List, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.List, 0, len(m.lists))
	for _, l := range m.lists {
		out = append(out, copyList(l))
	}
	sortListsByName(out)
	return out, nil
}

func (m *Memory) AppendReview(_ context.Context, name string, r models.Review, guard ListMutator) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	_, err := m.updateListLocked(name, func(l *models.List) error {
		if guard != nil {
			if err := guard(l); err != nil {
				return err
			}
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
		l.Reviews = append(l.Reviews, r)
		idx = len(l.Reviews) - 1
		return nil
	})
	return idx, err
}

func (m *Memory) SetReviewHidden(_ context.Context, name string, idx int, hidden *bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result bool
	_, err := m.updateListLocked(name, func(l *models.List) error {
		var err error
		result, err = applyHidden(l, idx, hidden)
		return err
	})
	return result, err
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = strings.ToLower(u.Email)
	if _, ok := m.emails[u.Email]; ok {
		return ErrExists
	}
	m.users[u.ID] = *u
	m.emails[u.Email] = u.ID
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emails[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

func (m *Memory) UpdateUser(_ context.Context, id string, fn UserMutator) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	email := u.Email
	if err := fn(&u); err != nil {
		return nil, err
	}
	u.ID, u.Email = id, email
	m.users[id] = u
	return &u, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func sortListsByName(ls []models.List) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].Name < ls[j].Name })
}

func copyList(l models.List) models.List {
	l.Destinations = append([]int(nil), l.Destinations...)
	l.Reviews = append([]models.Review(nil), l.Reviews...)
	return l
}

func copyDestination(d models.Destination) models.Destination {
	if d.Attributes != nil {
		attrs := make(map[string]string, len(d.Attributes))
		for k, v := range d.Attributes {
			attrs[k] = v
		}
		d.Attributes = attrs
	}
	return d
}
