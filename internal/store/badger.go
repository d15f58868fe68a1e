// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	destKeyPrefix      = "dest:"
	listKeyPrefix      = "list:"
	listOwnerKeyPrefix = "list_owner:"
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"
)

// maxConflictRetries bounds how often a read-modify-write transaction is
// replayed after badger.ErrConflict.
const maxConflictRetries = 3

// Badger implements Repository on an embedded Badger database.
type Badger struct {
	db *badger.DB
}

var _ Repository = (*Badger)(nil)

// Open opens (or creates) the database described by cfg.
func Open(cfg config.StoreConfig) (*Badger, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = newBadgerLogger()

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("Store opened")
	return &Badger{db: db}, nil
}

// NewBadger wraps an already opened database. Tests use it with an in-memory
// instance.
func NewBadger(db *badger.DB) *Badger {
	return &Badger{db: db}
}

// Close flushes and closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Ping reports whether the database is open.
func (b *Badger) Ping(_ context.Context) error {
	if b.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

// RunGC reclaims value log space. It is safe to call periodically; a nil
// return means at least one file was rewritten.
func (b *Badger) RunGC(discardRatio float64) error {
	return b.db.RunValueLogGC(discardRatio)
}

func destKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%08d", destKeyPrefix, id))
}

func listKey(name string) []byte {
	return []byte(listKeyPrefix + name)
}

func listOwnerKey(userID, name string) []byte {
	return []byte(listOwnerKeyPrefix + userID + ":" + name)
}

func userKey(id string) []byte {
	return []byte(userKeyPrefix + id)
}

func userEmailKey(email string) []byte {
	return []byte(userEmailKeyPrefix + strings.ToLower(email))
}

// getJSON loads key into v, mapping a missing key to ErrNotFound.
func getJSON(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set(key, data)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// updateWithRetry runs fn in a read-write transaction and replays it when
// the commit loses an optimistic concurrency race.
func (b *Badger) updateWithRetry(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = b.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		logging.Debug().Int("attempt", attempt+1).Msg("Store transaction conflict, retrying")
	}
	return fmt.Errorf("transaction conflict after %d attempts: %w", maxConflictRetries, err)
}

// --- destinations ---

// CountDestinations counts catalog entries without decoding them.
func (b *Badger) CountDestinations(_ context.Context) (int, error) {
	count := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(destKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// SeedDestinations writes dests with a WriteBatch.
func (b *Badger) SeedDestinations(_ context.Context, dests []models.Destination) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range dests {
		data, err := json.Marshal(&dests[i])
		if err != nil {
			return fmt.Errorf("marshal destination %d: %w", dests[i].CustomID, err)
		}
		if err := wb.Set(destKey(dests[i].CustomID), data); err != nil {
			return fmt.Errorf("write destination %d: %w", dests[i].CustomID, err)
		}
	}
	return wb.Flush()
}

// ListDestinations relies on the zero-padded key to return CustomID order.
func (b *Badger) ListDestinations(_ context.Context) ([]models.Destination, error) {
	var out []models.Destination
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(destKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var d models.Destination
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &d)
			}); err != nil {
				return fmt.Errorf("decode destination: %w", err)
			}
			out = append(out, d)
		}
		return nil
	})
	return out, err
}

func (b *Badger) GetDestination(_ context.Context, id int) (*models.Destination, error) {
	var d models.Destination
	err := b.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, destKey(id), &d)
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// --- lists ---

func (b *Badger) CreateList(ctx context.Context, l *models.List) error {
	return b.updateWithRetry(ctx, func(txn *badger.Txn) error {
		found, err := exists(txn, listKey(l.Name))
		if err != nil {
			return fmt.Errorf("check list: %w", err)
		}
		if found {
			return ErrExists
		}
		if err := setJSON(txn, listKey(l.Name), l); err != nil {
			return err
		}
		return txn.Set(listOwnerKey(l.CreatedBy, l.Name), []byte(l.Name))
	})
}

func (b *Badger) GetList(_ context.Context, name string) (*models.List, error) {
	var l models.List
	err := b.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, listKey(name), &l)
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (b *Badger) UpdateList(ctx context.Context, name string, fn ListMutator) (*models.List, error) {
	var updated models.List
	err := b.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var l models.List
		if err := getJSON(txn, listKey(name), &l); err != nil {
			return err
		}
		if err := fn(&l); err != nil {
			return err
		}
		// The name is the key; mutators may not rename or re-own a list.
		l.Name = name
		if err := setJSON(txn, listKey(name), &l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (b *Badger) DeleteList(ctx context.Context, name string) error {
	return b.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var l models.List
		if err := getJSON(txn, listKey(name), &l); err != nil {
			return err
		}
		if err := txn.Delete(listKey(name)); err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		return txn.Delete(listOwnerKey(l.CreatedBy, name))
	})
}

// ListsByOwner walks the owner index, then loads each list.
func (b *Badger) ListsByOwner(_ context.Context, userID string) ([]models.List, error) {
	out := []models.List{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(listOwnerKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			name := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			var l models.List
			err := getJSON(txn, listKey(name), &l)
			if errors.Is(err, ErrNotFound) {
				continue // dangling index entry
			}
			if err != nil {
				return err
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

func (b *Badger) AllLists(_ context.Context) ([]models.List, error) {
	out := []models.List{}
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(listKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var l models.List
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &l)
			}); err != nil {
				return fmt.Errorf("decode list: %w", err)
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

func (b *Badger) AppendReview(ctx context.Context, name string, r models.Review, guard ListMutator) (int, error) {
	idx := -1
	_, err := b.UpdateList(ctx, name, func(l *models.List) error {
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

func (b *Badger) SetReviewHidden(ctx context.Context, name string, idx int, hidden *bool) (bool, error) {
	var result bool
	_, err := b.UpdateList(ctx, name, func(l *models.List) error {
		var err error
		result, err = applyHidden(l, idx, hidden)
		return err
	})
	return result, err
}

// applyHidden is shared by both implementations.
func applyHidden(l *models.List, idx int, hidden *bool) (bool, error) {
	if idx < 0 || idx >= len(l.Reviews) {
		return false, ErrIndexOutOfRange
	}
	if hidden != nil {
		l.Reviews[idx].Hidden = *hidden
	} else {
		l.Reviews[idx].Hidden = !l.Reviews[idx].Hidden
	}
	return l.Reviews[idx].Hidden, nil
}

// --- users ---

func (b *Badger) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	return b.updateWithRetry(ctx, func(txn *badger.Txn) error {
		found, err := exists(txn, userEmailKey(u.Email))
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if found {
			return ErrExists
		}
		if err := setJSON(txn, userKey(u.ID), u); err != nil {
			return err
		}
		return txn.Set(userEmailKey(u.Email), []byte(u.ID))
	})
}

func (b *Badger) GetUser(_ context.Context, id string) (*models.User, error) {
	var u models.User
	err := b.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userKey(id), &u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (b *Badger) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	var u models.User
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get email index: %w", err)
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return getJSON(txn, userKey(string(id)), &u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser applies fn atomically. Email changes are not supported, so the
// email index never needs rewriting.
func (b *Badger) UpdateUser(ctx context.Context, id string, fn UserMutator) (*models.User, error) {
	var updated models.User
	err := b.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var u models.User
		if err := getJSON(txn, userKey(id), &u); err != nil {
			return err
		}
		email := u.Email
		if err := fn(&u); err != nil {
			return err
		}
		u.ID, u.Email = id, email
		if err := setJSON(txn, userKey(id), &u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (b *Badger) ListUsers(_ context.Context) ([]models.User, error) {
	out := []models.User{}
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(userKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var u models.User
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &u)
			}); err != nil {
				return fmt.Errorf("decode user: %w", err)
			}
			out = append(out, u)
		}
		return nil
	})
	return out, err
}
