package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-clinic-appointment/internal/converter"
	"go-clinic-appointment/internal/delivery/dto"
	"go-clinic-appointment/internal/delivery/http/middleware"
	"go-clinic-appointment/internal/domain/entity"
	"go-clinic-appointment/internal/domain/repository"
	"go-clinic-appointment/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidShiftWindow = errors.New("invalid shift window")

type ShiftTemplateUsecase interface {
	UpdateMyTemplate(ctx context.Context, req *dto.UpdateShiftTemplateRequest) (*dto.ShiftTemplateResponse, error)
	GetTemplate(ctx context.Context, doctorID uuid.UUID) (*dto.ShiftTemplateResponse, error)
}

type shiftTemplateUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	templateRepo      repository.ShiftTemplateRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewShiftTemplateUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	templateRepo repository.ShiftTemplateRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) ShiftTemplateUsecase {
	return &shiftTemplateUsecase{
		db:                db,
		log:               log,
		templateRepo:      templateRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// UpdateMyTemplate replaces the logged-in doctor's recurring pattern.
// The template is created lazily on the first update. Existing
// appointments are not touched; the new pattern only shapes future
// availability reads.
func (u *shiftTemplateUsecase) UpdateMyTemplate(ctx context.Context, req *dto.UpdateShiftTemplateRequest) (*dto.ShiftTemplateResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	template := &entity.ShiftTemplate{
		DoctorID:       doctorID,
		Morning:        converter.WindowsFromRequests(req.Morning),
		Evening:        converter.WindowsFromRequests(req.Evening),
		WeekendMorning: converter.WindowsFromRequests(req.WeekendMorning),
		WeekendEvening: converter.WindowsFromRequests(req.WeekendEvening),
	}
	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShiftWindow, err)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.templateRepo.Upsert(tx, template); err != nil {
		u.log.Warnf("Failed to upsert shift template for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionShiftTemplateUpdate,
		"shift_template", doctorID.String(), nil, template); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit shift template update: %+v", err)
		return nil, err
	}

	u.log.Infof("Shift template updated: doctor=%s", doctorID)
	return converter.ShiftTemplateToResponse(template), nil
}

// GetTemplate returns a doctor's recurring pattern.
func (u *shiftTemplateUsecase) GetTemplate(ctx context.Context, doctorID uuid.UUID) (*dto.ShiftTemplateResponse, error) {
	template, err := u.templateRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find shift template for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if template == nil {
		return nil, ErrShiftTemplateNotFound
	}

	return converter.ShiftTemplateToResponse(template), nil
}
