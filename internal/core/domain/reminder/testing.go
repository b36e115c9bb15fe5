package reminder

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type FakeRepository struct {
	CreateError error
	GetError    error
	ReadError   error
	UpdateError error
	DeleteError error
	ReadWith    []ReadOptions

	reminders []Reminder
	nextID    int
	lock      sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.CreateError != nil {
		return rem, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	rem = Reminder{
		ID:         ID(fmt.Sprintf("reminder-%d", r.nextID)),
		Type:       input.Type,
		Title:      input.Title,
		Amount:     input.Amount,
		Category:   input.Category,
		Notes:      input.Notes,
		Recurrence: input.Recurrence,
		NextDueAt:  input.NextDueAt,
		DaysBefore: input.DaysBefore,
		IsActive:   input.IsActive,
		CreatedAt:  input.CreatedAt,
	}
	r.reminders = append(r.reminders, rem)
	return rem, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (rem Reminder, err error) {
	if r.GetError != nil {
		return rem, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, rem := range r.reminders {
		if rem.ID == id {
			return rem, nil
		}
	}
	return rem, ErrReminderDoesNotExist
}

func (r *FakeRepository) Read(ctx context.Context, options ReadOptions) ([]Reminder, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ReadWith = append(r.ReadWith, options)
	reminders := make([]Reminder, 0, len(r.reminders))
	for _, rem := range r.reminders {
		if options.IsActiveEquals.IsPresent && rem.IsActive != options.IsActiveEquals.Value {
			continue
		}
		if options.TypeEquals.IsPresent && rem.Type != options.TypeEquals.Value {
			continue
		}
		reminders = append(reminders, rem)
	}
	switch options.OrderBy {
	case OrderByDueAtAsc:
		sort.SliceStable(reminders, func(i, j int) bool {
			return reminders[i].NextDueAt.Before(reminders[j].NextDueAt)
		})
	case OrderByDueAtDesc:
		sort.SliceStable(reminders, func(i, j int) bool {
			return reminders[j].NextDueAt.Before(reminders[i].NextDueAt)
		})
	}
	return reminders, nil
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (rem Reminder, err error) {
	if r.UpdateError != nil {
		return rem, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.reminders {
		if r.reminders[ix].ID != input.ID {
			continue
		}
		rem := &r.reminders[ix]
		if input.DoTitleUpdate {
			rem.Title = input.Title
		}
		if input.DoAmountUpdate {
			rem.Amount = input.Amount
		}
		if input.DoCategoryUpdate {
			rem.Category = input.Category
		}
		if input.DoNotesUpdate {
			rem.Notes = input.Notes
		}
		if input.DoRecurrenceUpdate {
			rem.Recurrence = input.Recurrence
		}
		if input.DoNextDueAtUpdate {
			rem.NextDueAt = input.NextDueAt
		}
		if input.DoDaysBeforeUpdate {
			rem.DaysBefore = input.DaysBefore
		}
		if input.DoIsActiveUpdate {
			rem.IsActive = input.IsActive
		}
		if input.DoLastPaidAtUpdate {
			rem.LastPaidAt = input.LastPaidAt
		}
		if input.DoNotifiedDueAtUpdate {
			rem.NotifiedDueAt = input.NotifiedDueAt
		}
		return *rem, nil
	}
	return rem, ErrReminderDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, rem := range r.reminders {
		if rem.ID == id {
			r.reminders = append(r.reminders[:ix], r.reminders[ix+1:]...)
			return nil
		}
	}
	return ErrReminderDoesNotExist
}

type FakeSettingsRepository struct {
	GetError error
	SetError error
	Time     TimeOfDay
	lock     sync.Mutex
}

func NewFakeSettingsRepository() *FakeSettingsRepository {
	return &FakeSettingsRepository{Time: DefaultNotificationTime}
}

func (r *FakeSettingsRepository) GetNotificationTime(ctx context.Context) (TimeOfDay, error) {
	if r.GetError != nil {
		return TimeOfDay{}, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Time, nil
}

func (r *FakeSettingsRepository) SetNotificationTime(ctx context.Context, at TimeOfDay) error {
	if r.SetError != nil {
		return r.SetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Time = at
	return nil
}

type FakeNotificationScheduler struct {
	Scheduled     []Notification
	Canceled      []ID
	ScheduleError error
	CancelError   error
	lock          sync.Mutex
}

func NewFakeNotificationScheduler() *FakeNotificationScheduler {
	return &FakeNotificationScheduler{}
}

func (s *FakeNotificationScheduler) Schedule(ctx context.Context, notification Notification) error {
	if s.ScheduleError != nil {
		return s.ScheduleError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Scheduled = append(s.Scheduled, notification)
	return nil
}

func (s *FakeNotificationScheduler) Cancel(ctx context.Context, id ID) error {
	if s.CancelError != nil {
		return s.CancelError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Canceled = append(s.Canceled, id)
	return nil
}

type FakeSender struct {
	Sent  []Notification
	Error error
	lock  sync.Mutex
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) Send(ctx context.Context, notification Notification) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, notification)
	return nil
}

type FakeIdentityGenerator struct {
	lastID int
	lock   sync.Mutex
}

func NewFakeIdentityGenerator() *FakeIdentityGenerator {
	return &FakeIdentityGenerator{}
}

func (g *FakeIdentityGenerator) GenerateReminderID() ID {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.lastID++
	return ID(fmt.Sprintf("reminder-%d", g.lastID))
}
