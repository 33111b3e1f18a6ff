package service

import (
	"io"
	"testing"

	"go-clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNotifyEnqueues(t *testing.T) {
	svc := &NotificationService{
		log:   quietLogger(),
		queue: make(chan *entity.Notification, 2),
	}
	userID := uuid.New()

	svc.Notify(userID, entity.NotificationAppointmentBooked, "confirmed", entity.JSON{"number": "AP-1"})

	require.Len(t, svc.queue, 1)
	queued := <-svc.queue
	assert.Equal(t, userID, queued.UserID)
	assert.Equal(t, entity.NotificationAppointmentBooked, queued.Kind)
	assert.Equal(t, "confirmed", queued.Message)
	assert.Equal(t, entity.NotificationStatusPending, queued.Status)
}

func TestNotifyDropsWhenBufferFull(t *testing.T) {
	svc := &NotificationService{
		log:   quietLogger(),
		queue: make(chan *entity.Notification, 1),
	}
	userID := uuid.New()

	// Second call must not block even though the buffer is full.
	svc.Notify(userID, entity.NotificationAppointmentBooked, "first", nil)
	svc.Notify(userID, entity.NotificationAppointmentBooked, "second", nil)

	require.Len(t, svc.queue, 1)
	assert.Equal(t, "first", (<-svc.queue).Message)
}

func TestNotifyAfterStopIsNoop(t *testing.T) {
	svc := &NotificationService{
		log:   quietLogger(),
		queue: make(chan *entity.Notification, 1),
	}
	svc.stopped.Store(true)

	svc.Notify(uuid.New(), entity.NotificationAppointmentBooked, "late", nil)

	assert.Empty(t, svc.queue)
}
