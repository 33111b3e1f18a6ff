package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-clinic-appointment/internal/domain/entity"
	"go-clinic-appointment/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// DefaultSweepInterval between background sweeps
	DefaultSweepInterval = 15 * time.Minute

	// Timeout for one sweep pass
	sweepTimeout = 1 * time.Minute
)

// CompletionSweeper finalizes elapsed appointments in the background.
//
// Each pass marks scheduled appointments whose slot time has passed as
// completed and prunes ledger rows for past dates. Both happen in one
// transaction per pass. The status update is guarded by the current
// status, so an appointment cancelled mid-sweep stays cancelled.
type CompletionSweeper struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	occupiedRepo    repository.OccupiedSlotRepository

	interval time.Duration
	loc      *time.Location
	now      func() time.Time

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewCompletionSweeper(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	occupiedRepo repository.OccupiedSlotRepository,
	interval time.Duration,
	loc *time.Location,
) *CompletionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if loc == nil {
		loc = time.Local
	}
	return &CompletionSweeper{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		occupiedRepo:    occupiedRepo,
		interval:        interval,
		loc:             loc,
		now:             time.Now,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (s *CompletionSweeper) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop gracefully shuts down the sweeper.
// Safe to call multiple times.
func (s *CompletionSweeper) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("CompletionSweeper stopped")
	}
}

func (s *CompletionSweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Sweep goroutine stopping")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
			if _, _, err := s.Sweep(ctx); err != nil {
				s.log.Warnf("Background sweep failed: %+v", err)
			}
			cancel()
		}
	}
}

// Sweep runs one pass and reports how many appointments matched the due
// predicate and how many were actually transitioned. Also callable from
// the admin endpoint for an on-demand pass.
func (s *CompletionSweeper) Sweep(ctx context.Context) (matched, updated int64, err error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// slot_date < tomorrow covers past days plus today; per-slot times
	// decide which of today's appointments are already over.
	candidates, err := s.appointmentRepo.FindScheduledBefore(tx, today.AddDate(0, 0, 1))
	if err != nil {
		s.log.Warnf("Failed to load sweep candidates: %+v", err)
		return 0, 0, err
	}

	for i := range candidates {
		if !sweepDue(&candidates[i], now, s.loc) {
			continue
		}
		matched++

		rows, err := s.appointmentRepo.UpdateStatus(tx, candidates[i].ID,
			entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted)
		if err != nil {
			s.log.Warnf("Failed to complete appointment %s: %+v", candidates[i].Number, err)
			return matched, updated, err
		}
		updated += rows
	}

	pruned, err := s.occupiedRepo.PruneAllPast(tx, today)
	if err != nil {
		s.log.Warnf("Failed to prune past ledger rows: %+v", err)
		return matched, updated, err
	}

	if err := tx.Commit().Error; err != nil {
		return matched, updated, err
	}

	if matched > 0 || pruned > 0 {
		s.log.Infof("Sweep pass: matched=%d, completed=%d, pruned=%d", matched, updated, pruned)
	}
	return matched, updated, nil
}

// sweepDue reports whether a scheduled appointment's slot time has been
// reached: due means instant at or before now. Slots with unparseable
// legacy times fall back to comparing the date alone, so they complete the
// day after.
func sweepDue(appointment *entity.Appointment, now time.Time, loc *time.Location) bool {
	instant, err := appointment.Instant(loc)
	if err != nil {
		dayAfter := time.Date(
			appointment.SlotDate.Year(), appointment.SlotDate.Month(), appointment.SlotDate.Day(),
			0, 0, 0, 0, loc,
		).AddDate(0, 0, 1)
		return !dayAfter.After(now)
	}
	return !instant.After(now)
}
