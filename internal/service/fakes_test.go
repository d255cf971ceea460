// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// In-memory TransferRepository with a real compare-and-set
// ─────────────────────────────────────────────

type memTransferRepo struct {
	mu        sync.Mutex
	transfers map[string]models.Transfer
	now       func() time.Time
}

func newMemTransferRepo() *memTransferRepo {
	return &memTransferRepo{transfers: make(map[string]models.Transfer), now: time.Now}
}

func (r *memTransferRepo) CreateTransfer(ctx context.Context, t models.Transfer) (models.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transfers[t.ID]; ok {
		return models.Transfer{}, store.ErrTransferAlreadyExists
	}
	t.CreatedAt = r.now()
	t.UpdatedAt = t.CreatedAt
	r.transfers[t.ID] = t
	return t, nil
}

func (r *memTransferRepo) GetTransfer(ctx context.Context, id string) (models.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transfers[id]
	if !ok {
		return models.Transfer{}, store.ErrTransferNotFound
	}
	return t, nil
}

func (r *memTransferRepo) UpdateStatus(ctx context.Context, change store.StatusChange) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transfers[change.ID]
	if !ok || !slices.Contains(change.From, t.Status) {
		return false, nil
	}
	t.Status = change.To
	if change.ChunkCount != nil {
		t.ChunkCount = *change.ChunkCount
	}
	t.UpdatedAt = r.now()
	r.transfers[change.ID] = t
	return true, nil
}

func (r *memTransferRepo) ListByStatus(ctx context.Context, statuses []models.TransferStatus, before time.Time, limit uint64) ([]models.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Transfer
	for _, t := range r.transfers {
		if slices.Contains(statuses, t.Status) && t.UpdatedAt.Before(before) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Transfer) int { return a.UpdatedAt.Compare(b.UpdatedAt) })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memTransferRepo) ListForAddress(ctx context.Context, address string, box models.Mailbox) ([]models.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Transfer
	for _, t := range r.transfers {
		if (box == models.Inbox && t.Receiver == address) || (box == models.Outbox && t.Sender == address) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTransferRepo) ListOutstandingForAddress(ctx context.Context, address string) ([]models.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Transfer
	for _, t := range r.transfers {
		if (t.Sender == address || t.Receiver == address) && slices.Contains(outstandingStatuses, t.Status) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTransferRepo) setUpdatedAt(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.transfers[id]
	t.UpdatedAt = at
	r.transfers[id] = t
}

func (r *memTransferRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transfers)
}

// ─────────────────────────────────────────────
// In-memory TransferLogRepository
// ─────────────────────────────────────────────

type memLogRepo struct {
	mu   sync.Mutex
	logs []models.TransferLog
}

func (r *memLogRepo) AppendLog(ctx context.Context, entry models.TransferLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, entry)
	return nil
}

func (r *memLogRepo) ListLogs(ctx context.Context, transferID string) ([]models.TransferLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.TransferLog
	for _, l := range r.logs {
		if l.TransferID == transferID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLogRepo) DeleteLogsForTransfer(ctx context.Context, transferID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.logs)
	r.logs = slices.DeleteFunc(r.logs, func(l models.TransferLog) bool { return l.TransferID == transferID })
	return int64(before - len(r.logs)), nil
}

func (r *memLogRepo) DeleteLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.logs)
	r.logs = slices.DeleteFunc(r.logs, func(l models.TransferLog) bool { return l.CreatedAt.Before(before) })
	return int64(n - len(r.logs)), nil
}

func (r *memLogRepo) kinds(transferID string) []models.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.EventKind
	for _, l := range r.logs {
		if l.TransferID == transferID {
			out = append(out, l.Kind)
		}
	}
	return out
}

func (r *memLogRepo) countKind(transferID string, kind models.EventKind) int {
	n := 0
	for _, k := range r.kinds(transferID) {
		if k == kind {
			n++
		}
	}
	return n
}

// ─────────────────────────────────────────────
// In-memory UserRepository
// ─────────────────────────────────────────────

type memUserRepo struct {
	mu    sync.Mutex
	users map[int64]models.User
	next  int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]models.User)}
}

func (r *memUserRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Login == user.Login {
			return models.User{}, store.ErrLoginAlreadyExists
		}
	}
	r.next++
	user.UserID = r.next
	r.users[user.UserID] = user
	return user, nil
}

func (r *memUserRepo) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Login == login {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (r *memUserRepo) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return u, nil
}

func (r *memUserRepo) UpdateUserKeys(ctx context.Context, userID int64, publicKey []byte, protected models.ProtectedPrivateKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return store.ErrNoUserWasFound
	}
	now := time.Now()
	u.PublicKey = publicKey
	u.ProtectedPrivateKey = &protected
	u.KeysUpdatedAt = &now
	r.users[userID] = u
	return nil
}

// ─────────────────────────────────────────────
// ChunkStore that counts deletions
// ─────────────────────────────────────────────

type countingChunkStore struct {
	store.ChunkStore
	deletes atomic.Int32
}

func (c *countingChunkStore) DeleteChunks(ctx context.Context, transferID string) error {
	c.deletes.Add(1)
	return c.ChunkStore.DeleteChunks(ctx, transferID)
}

func newTestChunkStore(t *testing.T) *countingChunkStore {
	t.Helper()
	blobs, err := store.NewFileBlobStore(t.TempDir())
	require.NoError(t, err)
	return &countingChunkStore{ChunkStore: store.NewChunkStore(blobs, logger.Nop())}
}
