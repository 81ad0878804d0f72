// Package cart implements the session cart: an in-memory line list with
// synchronous local persistence and asynchronous full-replace mirroring to
// the remote document store. Local state is authoritative for the session;
// the mirror exists for cross-device continuity and never blocks a mutation.
package cart

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kridana/kridana-api/internal/platform/localstore"
	applog "github.com/kridana/kridana-api/internal/platform/logging"
)

const (
	localKeyPrefix = "cart:"
	mirrorTimeout  = 10 * time.Second
)

// Store holds one user's cart lines. It is safe for concurrent use, but a
// single writer per user is the expected access pattern (the Manager hands
// out one Store per user).
type Store struct {
	mu     sync.Mutex
	lines  []Line
	local  localstore.Store
	mirror Mirror // nil when no session is active
	userID string

	syncWG sync.WaitGroup
}

// NewStore loads a user's cart. With an active session (mirror != nil) the
// remote lines are fetched and win over the local cache; without one, or
// when the fetch fails, the local cache is loaded instead.
func NewStore(ctx context.Context, local localstore.Store, mirror Mirror, userID string) *Store {
	s := &Store{local: local, mirror: mirror, userID: userID}

	if mirror != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, mirrorTimeout)
		defer cancel()
		remote, err := mirror.Fetch(fetchCtx, userID)
		if err == nil {
			s.lines = remote
			s.persistLocal()
			return s
		}
		applog.LogWarn(ctx, "cart mirror fetch failed, using local cache",
			zap.String("userId", userID), zap.Error(err))
	}

	s.lines = s.loadLocal(ctx)
	return s
}

// AddItem normalizes the product and merges it into the cart: an existing
// line with the same identity key gains quantity 1, otherwise a new line is
// inserted. Products without an identity are ignored.
func (s *Store) AddItem(product Product, size string) {
	line, ok := Normalize(product, size)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(line.ItemID, line.SizeVariant); idx >= 0 {
		s.lines[idx].Quantity++
	} else {
		s.lines = append(s.lines, line)
	}
	s.persist()
}

// UpdateQuantity overwrites the quantity of the matching line. A quantity of
// zero or less removes the line. Absent lines are a no-op.
func (s *Store) UpdateQuantity(itemID string, quantity int, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(itemID, size)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		s.lines = slices.Delete(s.lines, idx, idx+1)
	} else {
		s.lines[idx].Quantity = quantity
	}
	s.persist()
}

// RemoveItem removes the matching line. Absent lines are a no-op.
func (s *Store) RemoveItem(itemID, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(itemID, size)
	if idx < 0 {
		return
	}
	s.lines = slices.Delete(s.lines, idx, idx+1)
	s.persist()
}

// Clear empties the cart and both persistence layers.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if err := s.local.Delete(s.localKey()); err != nil {
		applog.LogWarn(context.Background(), "cart local clear failed",
			zap.String("userId", s.userID), zap.Error(err))
	}
	if s.mirror != nil {
		s.syncWG.Add(1)
		go func() {
			defer s.syncWG.Done()
			ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
			defer cancel()
			if err := s.mirror.Clear(ctx, s.userID); err != nil {
				applog.LogWarn(ctx, "cart mirror clear failed",
					zap.String("userId", s.userID), zap.Error(err))
			}
		}()
	}
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// Count is the sum of quantities across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		if l.Quantity > 0 {
			total += l.Quantity
		}
	}
	return total
}

// Total is the sum of unit price times quantity across all lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, l := range s.lines {
		if l.UnitPrice > 0 && l.Quantity > 0 {
			total += l.UnitPrice * float64(l.Quantity)
		}
	}
	return total
}

// Flush waits for in-flight mirror writes. Used by graceful shutdown and
// tests; regular callers never wait on the mirror.
func (s *Store) Flush() {
	s.syncWG.Wait()
}

// persist writes the full line list to local storage synchronously and
// kicks off an asynchronous full-replace of the remote mirror. Mirror
// failures are logged and swallowed; local state stands. Callers hold s.mu.
func (s *Store) persist() {
	s.persistLocal()
	if s.mirror == nil {
		return
	}

	snapshot := slices.Clone(s.lines)
	s.syncWG.Add(1)
	go func() {
		defer s.syncWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := s.mirror.Replace(ctx, s.userID, snapshot); err != nil {
			applog.LogWarn(ctx, "cart mirror sync failed",
				zap.String("userId", s.userID),
				zap.Int("lines", len(snapshot)),
				zap.Error(err))
		}
	}()
}

func (s *Store) persistLocal() {
	data, err := json.Marshal(s.lines)
	if err != nil {
		applog.LogError(context.Background(), "cart serialization failed", err,
			zap.String("userId", s.userID))
		return
	}
	if err := s.local.Set(s.localKey(), string(data)); err != nil {
		applog.LogWarn(context.Background(), "cart local persist failed",
			zap.String("userId", s.userID), zap.Error(err))
	}
}

func (s *Store) loadLocal(ctx context.Context) []Line {
	raw, ok, err := s.local.Get(s.localKey())
	if err != nil {
		applog.LogWarn(ctx, "cart local load failed",
			zap.String("userId", s.userID), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		applog.LogWarn(ctx, "cart local cache corrupt, starting empty",
			zap.String("userId", s.userID), zap.Error(err))
		return nil
	}
	return lines
}

func (s *Store) localKey() string {
	return localKeyPrefix + s.userID
}

// indexOf finds the line matching the identity key, or -1. Callers hold s.mu.
func (s *Store) indexOf(itemID, size string) int {
	return slices.IndexFunc(s.lines, func(l Line) bool {
		return l.ItemID == itemID && l.SizeVariant == size
	})
}
