package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-clinic-appointment/internal/domain/entity"
	"go-clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Default capacity of the in-flight notification buffer
	DefaultNotifyBuffer = 256

	// Timeout for persisting and dispatching a single notification
	notifyTimeout = 5 * time.Second
)

// Dispatcher delivers one notification to its channel (mail, SMS, push).
type Dispatcher interface {
	Dispatch(ctx context.Context, notification *entity.Notification) error
}

// logDispatcher is the built-in delivery channel: it writes the message to
// the application log. Real gateways implement Dispatcher and replace it
// through the constructor.
type logDispatcher struct {
	log *logrus.Logger
}

func NewLogDispatcher(log *logrus.Logger) Dispatcher {
	return &logDispatcher{log: log}
}

func (d *logDispatcher) Dispatch(ctx context.Context, notification *entity.Notification) error {
	d.log.Infof("Notification to %s [%s]: %s", notification.UserID, notification.Kind, notification.Message)
	return nil
}

// NotificationService records and delivers booking notifications.
//
// Delivery is fire and forget: Notify enqueues onto a bounded buffer and
// returns immediately, so a slow or failing channel never blocks or fails
// a booking. When the buffer is full the notification is dropped with a
// warning instead of applying backpressure to the caller.
type NotificationService struct {
	db         *gorm.DB
	log        *logrus.Logger
	repo       repository.NotificationRepository
	dispatcher Dispatcher

	queue    chan *entity.Notification
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewNotificationService creates the service and starts its worker.
// Call Stop() during graceful shutdown.
func NewNotificationService(
	db *gorm.DB,
	log *logrus.Logger,
	repo repository.NotificationRepository,
	dispatcher Dispatcher,
	buffer int,
) *NotificationService {
	if buffer <= 0 {
		buffer = DefaultNotifyBuffer
	}
	svc := &NotificationService{
		db:         db,
		log:        log,
		repo:       repo,
		dispatcher: dispatcher,
		queue:      make(chan *entity.Notification, buffer),
		stopChan:   make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.worker()

	return svc
}

// Stop drains nothing and exits the worker.
// Safe to call multiple times.
func (s *NotificationService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("NotificationService stopped")
	}
}

// Notify enqueues a notification for the user. Never blocks.
func (s *NotificationService) Notify(userID uuid.UUID, kind, message string, metadata entity.JSON) {
	if s.stopped.Load() {
		return
	}

	notification := &entity.Notification{
		UserID:   userID,
		Kind:     kind,
		Message:  message,
		Metadata: metadata,
		Status:   entity.NotificationStatusPending,
	}

	select {
	case s.queue <- notification:
	default:
		s.log.Warnf("Notification buffer full, dropping %s for user %s", kind, userID)
	}
}

func (s *NotificationService) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Notification worker stopping")
			return
		case notification := <-s.queue:
			s.process(notification)
		}
	}
}

// process persists the notification, attempts delivery, and records the
// outcome. A failed dispatch only flips the row to failed.
func (s *NotificationService) process(notification *entity.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.repo.Create(s.db.WithContext(ctx), notification); err != nil {
		s.log.Warnf("Failed to persist notification for user %s: %+v", notification.UserID, err)
		return
	}

	status := entity.NotificationStatusSent
	if err := s.dispatcher.Dispatch(ctx, notification); err != nil {
		s.log.Warnf("Failed to dispatch notification %d: %+v", notification.ID, err)
		status = entity.NotificationStatusFailed
	}

	if err := s.repo.UpdateStatus(s.db.WithContext(ctx), notification.ID, status); err != nil {
		s.log.Warnf("Failed to update notification %d status: %+v", notification.ID, err)
	}
}
