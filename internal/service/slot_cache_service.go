package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go-clinic-appointment/internal/domain/entity"
	"go-clinic-appointment/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// RedisOccupiedKeyPrefix namespaces the per-doctor occupancy hashes.
	// Key: occupied:<doctor_id>, field: "YYYY-MM-DD HH:MM", value: appointment id.
	RedisOccupiedKeyPrefix = "occupied:"

	// Batch size for startup sync - process 500 ledger rows at a time.
	// Pipeline is created and executed INSIDE the batch loop.
	syncBatchSize = 500

	// Mirror hashes expire on their own; the resync loop refreshes them.
	occupiedKeyTTL = 48 * time.Hour

	// Interval for the background full resync
	resyncInterval = 6 * time.Hour

	// Timeout for each background resync pass
	resyncTimeout = 2 * time.Minute
)

// SlotCacheService mirrors the occupied-slot ledger from PostgreSQL into
// Redis so availability reads never touch the database on the hot path.
//
// The mirror is read-side only: the database unique index stays the single
// serialization point for claims, and every mirror write happens AFTER the
// owning transaction commits. A stale or unreachable mirror is therefore
// never a correctness problem, callers fall back to the ledger table.
type SlotCacheService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewSlotCacheService creates a new SlotCacheService.
// Starts a background goroutine that periodically re-syncs the mirror.
// Call Stop() during graceful shutdown.
func NewSlotCacheService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *SlotCacheService {
	svc := &SlotCacheService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.resyncLoop()

	return svc
}

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *SlotCacheService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotCacheService stopped")
	}
}

// SyncOnStartup rebuilds the full mirror from the occupied_slots table.
//
// Processes ledger rows in batches of 500 and executes a NEW pipeline per
// batch to keep memory bounded. The first batch touching a doctor deletes
// that doctor's hash so fields released while Redis was down do not linger.
//
// Should be called before accepting traffic (startup/disaster recovery).
func (s *SlotCacheService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting occupied-slot mirror re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	seenDoctors := make(map[uuid.UUID]bool)
	offset := 0
	totalSynced := 0

	for {
		var slots []entity.OccupiedSlot
		err := s.db.WithContext(ctx).
			Order("doctor_id ASC, slot_date ASC, time_slot ASC").
			Limit(syncBatchSize).
			Offset(offset).
			Find(&slots).Error
		if err != nil {
			s.log.Errorf("Failed to query occupied slots at offset %d: %+v", offset, err)
			return fmt.Errorf("query occupied slots at offset %d: %w", offset, err)
		}

		if len(slots) == 0 {
			if offset == 0 {
				s.log.Info("No occupied slots found for sync")
			}
			break
		}

		// New pipeline per batch to prevent memory accumulation
		pipe := s.redisClient.TxPipeline()

		for _, slot := range slots {
			key := occupiedKey(slot.DoctorID)
			if !seenDoctors[slot.DoctorID] {
				seenDoctors[slot.DoctorID] = true
				pipe.Del(ctx, key)
			}
			pipe.HSet(ctx, key, occupiedField(slot.SlotDate, slot.TimeSlot), slot.AppointmentID.String())
			pipe.Expire(ctx, key, occupiedKeyTTL)
		}

		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(slots)

		if len(slots) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	elapsed := time.Since(startTime)
	s.log.Infof("Occupied-slot mirror re-sync completed: %d slots for %d doctors in %v",
		totalSynced, len(seenDoctors), elapsed)

	return nil
}

// AddOccupied mirrors a committed slot claim.
// Failures are logged and returned but never block the booking flow.
func (s *SlotCacheService) AddOccupied(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string, appointmentID uuid.UUID) error {
	key := occupiedKey(doctorID)

	pipe := s.redisClient.TxPipeline()
	pipe.HSet(ctx, key, occupiedField(date, timeSlot), appointmentID.String())
	pipe.Expire(ctx, key, occupiedKeyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to mirror claim for doctor %s: %+v", doctorID, err)
		return fmt.Errorf("mirror claim for doctor %s: %w", doctorID, err)
	}
	return nil
}

// RemoveOccupied mirrors a committed slot release.
func (s *SlotCacheService) RemoveOccupied(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) error {
	if err := s.redisClient.HDel(ctx, occupiedKey(doctorID), occupiedField(date, timeSlot)).Err(); err != nil {
		s.log.Warnf("Failed to mirror release for doctor %s: %+v", doctorID, err)
		return fmt.Errorf("mirror release for doctor %s: %w", doctorID, err)
	}
	return nil
}

// RemoveOccupiedBatch mirrors a bulk release (doctor leave) in one pipeline.
func (s *SlotCacheService) RemoveOccupiedBatch(ctx context.Context, doctorID uuid.UUID, slots []entity.OccupiedSlot) error {
	if len(slots) == 0 {
		return nil
	}

	fields := make([]string, 0, len(slots))
	for _, slot := range slots {
		fields = append(fields, occupiedField(slot.SlotDate, slot.TimeSlot))
	}

	if err := s.redisClient.HDel(ctx, occupiedKey(doctorID), fields...).Err(); err != nil {
		s.log.Warnf("Failed to mirror bulk release for doctor %s: %+v", doctorID, err)
		return fmt.Errorf("mirror bulk release for doctor %s: %w", doctorID, err)
	}
	return nil
}

// OccupiedByRange returns the doctor's mirrored occupied slots grouped by
// date key, limited to [from, to]. ok is false when the mirror has no hash
// for the doctor or Redis is unreachable; the caller must then fall back to
// the ledger table. An existing but empty hash cannot be distinguished from
// an absent one, so a fully free doctor always reads through to the ledger.
func (s *SlotCacheService) OccupiedByRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) (map[string][]string, bool) {
	key := occupiedKey(doctorID)

	fields, err := s.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Failed to read occupied mirror for doctor %s: %+v", doctorID, err)
		return nil, false
	}
	if len(fields) == 0 {
		return nil, false
	}

	fromKey := from.Format(timeslot.DateLayout)
	toKey := to.Format(timeslot.DateLayout)

	occupied := make(map[string][]string)
	for field := range fields {
		dateKey, slot, found := strings.Cut(field, " ")
		if !found {
			continue
		}
		if dateKey < fromKey || dateKey > toKey {
			continue
		}
		occupied[dateKey] = append(occupied[dateKey], slot)
	}
	return occupied, true
}

// resyncLoop periodically rebuilds the mirror so drift from missed
// post-commit writes heals on its own.
func (s *SlotCacheService) resyncLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(resyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mirror resync goroutine stopping")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
			if err := s.SyncOnStartup(ctx); err != nil {
				s.log.Warnf("Background mirror resync failed: %+v", err)
			}
			cancel()
		}
	}
}

func occupiedKey(doctorID uuid.UUID) string {
	return RedisOccupiedKeyPrefix + doctorID.String()
}

func occupiedField(date time.Time, slot string) string {
	return date.Format(timeslot.DateLayout) + " " + timeslot.Normalize(slot)
}
