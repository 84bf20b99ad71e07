package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/mylife-client/internal/adapter"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/models"
)

type syncOrchestrator struct {
	backend adapter.BackendAdapter
	now     func() time.Time

	busy atomic.Bool

	mu          sync.RWMutex
	status      models.SyncState
	hasStatus   bool
	conflicts   []models.Conflict
	pullBlocked bool
	lastErr     string

	logger *logger.Logger
}

func NewSyncOrchestrator(backend adapter.BackendAdapter, logger *logger.Logger) SyncOrchestrator {
	return &syncOrchestrator{
		backend:   backend,
		now:       time.Now,
		conflicts: []models.Conflict{},
		logger:    logger,
	}
}

func (s *syncOrchestrator) begin() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	return nil
}

func (s *syncOrchestrator) end() {
	s.busy.Store(false)
}

func (s *syncOrchestrator) Push(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.backend.Push(ctx); err != nil {
		err = mapAdapterError(err)
		s.fail(err)
		s.logger.Err(err).Str("func", "*syncOrchestrator.Push").Msg("push failed")
		return err
	}

	s.succeed()
	s.refreshStatus(ctx, func(st *models.SyncState, now *models.Timestamp) {
		st.LastPushAt = now
	})

	s.logger.Info().Msg("snapshot pushed")
	return nil
}

func (s *syncOrchestrator) Pull(ctx context.Context) error {
	s.mu.RLock()
	blocked := s.pullBlocked
	s.mu.RUnlock()
	if blocked {
		return ErrConflictsPending
	}

	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	err := s.backend.Pull(ctx)
	if errors.Is(err, adapter.ErrConflict) {
		s.recordConflict(ctx, err)
		return ErrSyncConflict
	}
	if err != nil {
		err = mapAdapterError(err)
		s.fail(err)
		s.logger.Err(err).Str("func", "*syncOrchestrator.Pull").Msg("pull failed")
		return err
	}

	s.mu.Lock()
	s.conflicts = []models.Conflict{}
	s.mu.Unlock()

	s.succeed()
	s.refreshStatus(ctx, func(st *models.SyncState, now *models.Timestamp) {
		st.LastPullAt = now
	})

	s.logger.Info().Msg("snapshot pulled")
	return nil
}

// recordConflict fetches the conflict list after a conflicting pull. An
// empty or unreadable list is replaced by one divergent_history entry so
// the user always has something to resolve.
func (s *syncOrchestrator) recordConflict(ctx context.Context, pullErr error) {
	conflicts, err := s.backend.Conflicts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not list conflicts after pull")
	}
	if len(conflicts) == 0 {
		conflicts = []models.Conflict{{
			Type:    models.ConflictTypeDivergentHistory,
			Message: adapter.MessageOf(pullErr),
		}}
	}

	s.mu.Lock()
	s.conflicts = conflicts
	s.pullBlocked = true
	s.lastErr = ErrSyncConflict.Error()
	s.mu.Unlock()

	s.logger.Warn().Int("conflicts", len(conflicts)).Msg("pull found conflicting snapshots")
}

func (s *syncOrchestrator) ResolveConflict(ctx context.Context, strategy models.ResolveStrategy, confirmed bool) error {
	if !strategy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
	if strategy.Destructive() && !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	resolveErr := s.backend.ResolveConflict(ctx, strategy)
	if resolveErr == nil {
		s.mu.Lock()
		s.pullBlocked = false
		s.mu.Unlock()
	}

	// the backend decides what is left
	if err := s.fetchConflicts(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("could not re-fetch conflicts after resolve")
	} else if resolveErr == nil {
		s.mu.Lock()
		s.pullBlocked = len(s.conflicts) > 0
		s.mu.Unlock()
	}
	s.refreshStatus(ctx, nil)

	if resolveErr != nil {
		err := mapAdapterError(resolveErr)
		s.fail(err)
		s.logger.Err(err).
			Str("func", "*syncOrchestrator.ResolveConflict").
			Str("strategy", string(strategy)).
			Msg("conflict resolution failed")
		return err
	}

	s.succeed()
	s.logger.Info().Str("strategy", string(strategy)).Msg("conflict resolved")
	return nil
}

func (s *syncOrchestrator) Refresh(ctx context.Context) error {
	var errs []error

	status, err := s.backend.SyncStatus(ctx)
	if err != nil {
		errs = append(errs, mapAdapterError(err))
	} else {
		s.mu.Lock()
		s.status = status
		s.hasStatus = true
		s.mu.Unlock()
	}

	if err = s.fetchConflicts(ctx); err != nil {
		errs = append(errs, mapAdapterError(err))
	}

	return errors.Join(errs...)
}

// fetchConflicts replaces the known conflicts with the backend list. While
// a pull is blocked an empty list keeps the local entries.
func (s *syncOrchestrator) fetchConflicts(ctx context.Context) error {
	conflicts, err := s.backend.Conflicts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(conflicts) == 0 && s.pullBlocked {
		return nil
	}
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}
	s.conflicts = conflicts
	return nil
}

// refreshStatus re-fetches the sync state. When that fails and override is
// set, override is applied to the cached state with the current time.
func (s *syncOrchestrator) refreshStatus(ctx context.Context, override func(*models.SyncState, *models.Timestamp)) {
	status, err := s.backend.SyncStatus(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.status = status
		s.hasStatus = true
		return
	}

	s.logger.Warn().Err(err).Msg("could not re-fetch sync status")
	if override != nil {
		override(&s.status, models.NewTimestamp(s.now()))
		s.hasStatus = true
	}
}

func (s *syncOrchestrator) fail(err error) {
	s.mu.Lock()
	s.lastErr = adapter.MessageOf(err)
	s.mu.Unlock()
}

func (s *syncOrchestrator) succeed() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *syncOrchestrator) Snapshot() SyncSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SyncSnapshot{
		Status:      s.status,
		HasStatus:   s.hasStatus,
		Conflicts:   append([]models.Conflict{}, s.conflicts...),
		PullBlocked: s.pullBlocked,
		LastError:   s.lastErr,
		Busy:        s.busy.Load(),
	}
}
