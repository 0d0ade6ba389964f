// Package scheduler runs periodic maintenance jobs outside the request path.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/booktracker/internal/database/tokens"
)

// pruneTimeout bounds a single pruning pass.
const pruneTimeout = 30 * time.Second

// TokenPruneScheduler deletes expired token records on a cron schedule.
// Revocation enforcement is unaffected: rows are only removed once their
// expiry has passed and the token can no longer authorize anything.
type TokenPruneScheduler struct {
	tokens   *tokens.Repository
	schedule string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewTokenPruneScheduler creates a new scheduler instance.
func NewTokenPruneScheduler(tokenRepo *tokens.Repository, schedule string) *TokenPruneScheduler {
	return &TokenPruneScheduler{
		tokens:   tokenRepo,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *TokenPruneScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.runPrune)
	if err != nil {
		return fmt.Errorf("failed to schedule token pruning '%s': %w", s.schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Token pruning scheduled: %s", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running pass to finish.
func (s *TokenPruneScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	log.Printf("Token pruning stopped")
}

func (s *TokenPruneScheduler) runPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	removed, err := s.tokens.DeleteExpiredTokens(ctx)
	if err != nil {
		log.Printf("Token pruning failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Token pruning removed %d expired records", removed)
	}
}
