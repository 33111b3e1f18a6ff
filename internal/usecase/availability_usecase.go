package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"go-clinic-appointment/internal/delivery/dto"
	"go-clinic-appointment/internal/domain/entity"
	"go-clinic-appointment/internal/domain/repository"
	"go-clinic-appointment/internal/service"
	"go-clinic-appointment/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrShiftTemplateNotFound = errors.New("doctor has no shift template")

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	templateRepo      repository.ShiftTemplateRepository
	occupiedRepo      repository.OccupiedSlotRepository
	doctorProfileRepo repository.DoctorProfileRepository
	slotCache         *service.SlotCacheService

	step        time.Duration
	horizonDays int
	loc         *time.Location
	now         func() time.Time
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	templateRepo repository.ShiftTemplateRepository,
	occupiedRepo repository.OccupiedSlotRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	slotCache *service.SlotCacheService,
	step time.Duration,
	horizonDays int,
	loc *time.Location,
) AvailabilityUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &availabilityUsecase{
		db:                db,
		log:               log,
		templateRepo:      templateRepo,
		occupiedRepo:      occupiedRepo,
		doctorProfileRepo: doctorProfileRepo,
		slotCache:         slotCache,
		step:              step,
		horizonDays:       horizonDays,
		loc:               loc,
		now:               time.Now,
	}
}

// GetAvailability expands the doctor's shift template over the booking
// horizon and subtracts the occupied slots. Occupied slots are read from
// the Redis mirror when it has the doctor's hash; otherwise from the
// ledger table.
func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	template, err := u.templateRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find shift template for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if template == nil {
		return nil, ErrShiftTemplateNotFound
	}

	from := startOfDay(u.now().In(u.loc))
	to := from.AddDate(0, 0, u.horizonDays-1)

	occupied, ok := u.slotCache.OccupiedByRange(ctx, doctorID, from, to)
	if !ok {
		slots, err := u.occupiedRepo.FindByDoctorInRange(u.db.WithContext(ctx), doctorID, from, to)
		if err != nil {
			u.log.Warnf("Failed to load occupied slots for doctor %s: %+v", doctorID, err)
			return nil, err
		}
		occupied = groupOccupied(slots)
	}

	days := buildAvailability(template, occupied, from, u.horizonDays, u.step)

	total := 0
	for _, day := range days {
		total += len(day.Slots)
	}

	return &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Days:     days,
		Total:    total,
	}, nil
}

// buildAvailability is the pure core of the resolver: template windows
// expanded day by day over the horizon, minus occupied slots keyed by
// date. Days with no applicable windows are omitted; a fully booked day
// stays in the result with an empty slot list. Occupied values in legacy
// formats are normalized before the subtraction.
func buildAvailability(
	template *entity.ShiftTemplate,
	occupied map[string][]string,
	from time.Time,
	days int,
	step time.Duration,
) []dto.DayAvailability {
	var result []dto.DayAvailability

	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		windows := template.WindowsFor(date)
		if len(windows) == 0 {
			continue
		}

		dateKey := date.Format(timeslot.DateLayout)

		taken := make(map[string]bool)
		for _, slot := range occupied[dateKey] {
			taken[timeslot.Normalize(slot)] = true
		}

		seen := make(map[string]bool)
		free := []string{}
		for _, window := range windows {
			for _, slot := range timeslot.Generate(window.StartTime, window.EndTime, step) {
				if seen[slot] {
					continue
				}
				seen[slot] = true
				if !taken[slot] {
					free = append(free, slot)
				}
			}
		}

		sort.Slice(free, func(a, b int) bool {
			return timeslot.Compare(free[a], free[b]) < 0
		})

		result = append(result, dto.DayAvailability{Date: dateKey, Slots: free})
	}

	return result
}

// groupOccupied turns ledger rows into the per-date times map the resolver
// consumes, the same shape the Redis mirror returns.
func groupOccupied(slots []entity.OccupiedSlot) map[string][]string {
	occupied := make(map[string][]string, len(slots))
	for _, slot := range slots {
		occupied[slot.DateKey()] = append(occupied[slot.DateKey()], slot.TimeSlot)
	}
	return occupied
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
