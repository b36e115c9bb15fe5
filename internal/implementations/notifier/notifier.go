package notifier

import (
	"context"
	"sync"
	"time"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
	sendnotification "github.com/CarelessWhissper/expense-tracker/internal/core/services/send_notification"
)

// InProcess schedules notifications on in-process timers, one pending timer
// per reminder. Scheduling a reminder again supersedes its pending timer, so
// only the most recent fire time can go off. State is lost on restart, the
// startup scheduling pass rebuilds it.
type InProcess struct {
	log     logging.Logger
	service services.Service[sendnotification.Input, sendnotification.Result]
	now     func() time.Time
	timers  map[reminder.ID]*time.Timer
	lock    sync.Mutex
}

func NewInProcess(
	log logging.Logger,
	service services.Service[sendnotification.Input, sendnotification.Result],
	now func() time.Time,
) *InProcess {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &InProcess{
		log:     log,
		service: service,
		now:     now,
		timers:  make(map[reminder.ID]*time.Timer),
	}
}

func (n *InProcess) Schedule(ctx context.Context, notification reminder.Notification) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	if timer, ok := n.timers[notification.ReminderID]; ok {
		timer.Stop()
	}

	delay := notification.FireAt.Sub(n.now())
	if delay < 0 {
		delay = 0
	}
	id := notification.ReminderID
	n.timers[id] = time.AfterFunc(delay, func() {
		n.fire(notification)
	})
	n.log.Info(
		ctx,
		"Notification timer set.",
		logging.Entry("reminderID", id),
		logging.Entry("fireAt", notification.FireAt),
	)
	return nil
}

func (n *InProcess) Cancel(ctx context.Context, id reminder.ID) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	timer, ok := n.timers[id]
	if !ok {
		return nil
	}
	timer.Stop()
	delete(n.timers, id)
	n.log.Info(ctx, "Notification timer canceled.", logging.Entry("reminderID", id))
	return nil
}

// Close stops all pending timers.
func (n *InProcess) Close() {
	n.lock.Lock()
	defer n.lock.Unlock()

	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
}

func (n *InProcess) fire(notification reminder.Notification) {
	ctx := context.Background()

	n.lock.Lock()
	delete(n.timers, notification.ReminderID)
	n.lock.Unlock()

	_, err := n.service.Run(ctx, sendnotification.Input{
		ReminderID: notification.ReminderID,
		DueAt:      notification.DueAt,
		FireAt:     notification.FireAt,
	})
	if err != nil {
		logging.Error(ctx, n.log, err, logging.Entry("reminderID", notification.ReminderID))
	}
}
