package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/keyvalue"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/shopspring/decimal"
)

// StorageKey is the fixed key the whole reminder state is persisted under.
const StorageKey = "reminders"

type storedReminder struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	Amount        *string `json:"amount,omitempty"`
	Category      *string `json:"category,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Frequency     string  `json:"frequency"`
	CustomDays    int     `json:"custom_days,omitempty"`
	NextDueAt     string  `json:"next_due_date"`
	DaysBefore    uint    `json:"reminder_days_before"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
	LastPaidAt    *string `json:"last_paid,omitempty"`
	NotifiedDueAt *string `json:"notified_due_date,omitempty"`
}

type storedState struct {
	// Raw records so that one corrupt record does not fail the whole load.
	Reminders        []json.RawMessage `json:"reminders"`
	NotificationTime string            `json:"notification_time"`
}

// Store keeps the reminder collection in memory, in insertion order, and
// flushes the full state to the key-value persistence capability after every
// mutation. It implements both reminder.Repository and
// reminder.SettingsRepository.
type Store struct {
	log              logging.Logger
	kv               keyvalue.Store
	identity         reminder.IdentityGenerator
	reminders        []reminder.Reminder
	notificationTime reminder.TimeOfDay
	lock             sync.Mutex
}

func NewStore(log logging.Logger, kv keyvalue.Store, identity reminder.IdentityGenerator) *Store {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if kv == nil {
		panic(e.NewNilArgumentError("kv"))
	}
	if identity == nil {
		panic(e.NewNilArgumentError("identity"))
	}
	return &Store{
		log:              log,
		kv:               kv,
		identity:         identity,
		notificationTime: reminder.DefaultNotificationTime,
	}
}

// Load rehydrates the store. A missing or unreadable document means "no
// reminders yet", corrupt individual records are skipped and flagged. Load
// never fails the caller.
func (s *Store) Load(ctx context.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, keyvalue.ErrKeyDoesNotExist) {
		return
	}
	if err != nil {
		s.log.Warning(
			ctx,
			"Could not load reminders, starting empty.",
			logging.Entry("err", err.Error()),
		)
		return
	}

	state := storedState{}
	if err := json.Unmarshal(data, &state); err != nil {
		s.log.Warning(
			ctx,
			"Stored reminder state is not valid JSON, starting empty.",
			logging.Entry("err", err.Error()),
		)
		return
	}

	if state.NotificationTime != "" {
		at, err := reminder.ParseTimeOfDay(state.NotificationTime)
		if err != nil {
			s.log.Warning(
				ctx,
				"Stored notification time is invalid, using default.",
				logging.Entry("value", state.NotificationTime),
			)
		} else {
			s.notificationTime = at
		}
	}

	for ix, raw := range state.Reminders {
		rem, err := decodeReminder(raw)
		if err != nil {
			s.log.Warning(
				ctx,
				"Corrupt reminder record skipped.",
				logging.Entry("index", ix),
				logging.Entry("err", err.Error()),
			)
			continue
		}
		s.reminders = append(s.reminders, rem)
	}

	s.log.Info(
		ctx,
		"Reminder store loaded.",
		logging.Entry("reminderCount", len(s.reminders)),
		logging.Entry("notificationTime", s.notificationTime.String()),
	)
}

func (s *Store) Create(ctx context.Context, input reminder.CreateInput) (rem reminder.Reminder, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rem = reminder.Reminder{
		ID:         s.identity.GenerateReminderID(),
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
	s.reminders = append(s.reminders, rem)
	s.flush(ctx)
	return rem, nil
}

func (s *Store) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, rem := range s.reminders {
		if rem.ID == id {
			return rem, nil
		}
	}
	return rem, reminder.ErrReminderDoesNotExist
}

func (s *Store) Read(ctx context.Context, options reminder.ReadOptions) ([]reminder.Reminder, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	reminders := make([]reminder.Reminder, 0, len(s.reminders))
	for _, rem := range s.reminders {
		if options.IsActiveEquals.IsPresent && rem.IsActive != options.IsActiveEquals.Value {
			continue
		}
		if options.TypeEquals.IsPresent && rem.Type != options.TypeEquals.Value {
			continue
		}
		reminders = append(reminders, rem)
	}
	switch options.OrderBy {
	case reminder.OrderByDueAtAsc:
		sort.SliceStable(reminders, func(i, j int) bool {
			return reminders[i].NextDueAt.Before(reminders[j].NextDueAt)
		})
	case reminder.OrderByDueAtDesc:
		sort.SliceStable(reminders, func(i, j int) bool {
			return reminders[j].NextDueAt.Before(reminders[i].NextDueAt)
		})
	}
	return reminders, nil
}

func (s *Store) Update(ctx context.Context, input reminder.UpdateInput) (updated reminder.Reminder, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for ix := range s.reminders {
		if s.reminders[ix].ID != input.ID {
			continue
		}
		rem := &s.reminders[ix]
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
		s.flush(ctx)
		return *rem, nil
	}
	return updated, reminder.ErrReminderDoesNotExist
}

func (s *Store) Delete(ctx context.Context, id reminder.ID) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for ix, rem := range s.reminders {
		if rem.ID == id {
			s.reminders = append(s.reminders[:ix], s.reminders[ix+1:]...)
			s.flush(ctx)
			return nil
		}
	}
	return reminder.ErrReminderDoesNotExist
}

func (s *Store) GetNotificationTime(ctx context.Context) (reminder.TimeOfDay, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.notificationTime, nil
}

func (s *Store) SetNotificationTime(ctx context.Context, at reminder.TimeOfDay) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.notificationTime = at
	s.flush(ctx)
	return nil
}

// flush writes the full state. A failed write is logged and not propagated,
// the next mutation writes the same state again. Callers must hold the lock.
func (s *Store) flush(ctx context.Context) {
	state := storedState{
		Reminders:        make([]json.RawMessage, 0, len(s.reminders)),
		NotificationTime: s.notificationTime.String(),
	}
	for _, rem := range s.reminders {
		raw, err := json.Marshal(encodeReminder(rem))
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			continue
		}
		state.Reminders = append(state.Reminders, raw)
	}
	data, err := json.Marshal(state)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return
	}
	if err := s.kv.Set(ctx, StorageKey, data); err != nil {
		s.log.Warning(
			ctx,
			"Could not persist reminder state, will retry on next mutation.",
			logging.Entry("err", err.Error()),
		)
	}
}

func encodeReminder(rem reminder.Reminder) storedReminder {
	stored := storedReminder{
		ID:         string(rem.ID),
		Type:       rem.Type.String(),
		Title:      rem.Title,
		Frequency:  rem.Recurrence.Frequency.String(),
		CustomDays: rem.Recurrence.CustomDays,
		NextDueAt:  rem.NextDueAt.Format(time.RFC3339Nano),
		DaysBefore: rem.DaysBefore,
		IsActive:   rem.IsActive,
		CreatedAt:  rem.CreatedAt.Format(time.RFC3339Nano),
	}
	if rem.Amount.IsPresent {
		amount := rem.Amount.Value.String()
		stored.Amount = &amount
	}
	if rem.Category.IsPresent {
		category := rem.Category.Value
		stored.Category = &category
	}
	if rem.Notes.IsPresent {
		notes := rem.Notes.Value
		stored.Notes = &notes
	}
	if rem.LastPaidAt.IsPresent {
		lastPaidAt := rem.LastPaidAt.Value.Format(time.RFC3339Nano)
		stored.LastPaidAt = &lastPaidAt
	}
	if rem.NotifiedDueAt.IsPresent {
		notifiedDueAt := rem.NotifiedDueAt.Value.Format(time.RFC3339Nano)
		stored.NotifiedDueAt = &notifiedDueAt
	}
	return stored
}

func decodeReminder(raw json.RawMessage) (rem reminder.Reminder, err error) {
	stored := storedReminder{}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return rem, err
	}

	remType, err := reminder.ParseType(stored.Type)
	if err != nil {
		return rem, err
	}
	frequency, err := reminder.ParseFrequency(stored.Frequency)
	if err != nil {
		return rem, err
	}
	nextDueAt, err := time.Parse(time.RFC3339Nano, stored.NextDueAt)
	if err != nil {
		return rem, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, stored.CreatedAt)
	if err != nil {
		return rem, err
	}

	rem = reminder.Reminder{
		ID:         reminder.ID(stored.ID),
		Type:       remType,
		Title:      stored.Title,
		Recurrence: reminder.NewRecurrence(frequency, stored.CustomDays),
		NextDueAt:  nextDueAt,
		DaysBefore: stored.DaysBefore,
		IsActive:   stored.IsActive,
		CreatedAt:  createdAt,
	}
	if stored.Amount != nil {
		amount, err := decimal.NewFromString(*stored.Amount)
		if err != nil {
			return rem, err
		}
		rem.Amount = c.NewOptional(amount, true)
	}
	if stored.Category != nil {
		rem.Category = c.NewOptional(*stored.Category, true)
	}
	if stored.Notes != nil {
		rem.Notes = c.NewOptional(*stored.Notes, true)
	}
	if stored.LastPaidAt != nil {
		lastPaidAt, err := time.Parse(time.RFC3339Nano, *stored.LastPaidAt)
		if err != nil {
			return rem, err
		}
		rem.LastPaidAt = c.NewOptional(lastPaidAt, true)
	}
	if stored.NotifiedDueAt != nil {
		notifiedDueAt, err := time.Parse(time.RFC3339Nano, *stored.NotifiedDueAt)
		if err != nil {
			return rem, err
		}
		rem.NotifiedDueAt = c.NewOptional(notifiedDueAt, true)
	}
	return rem, nil
}
