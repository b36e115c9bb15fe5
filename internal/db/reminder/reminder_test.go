package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/keyvalue"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type storeTestSuite struct {
	suite.Suite
	log   *logging.FakeLogger
	kv    *keyvalue.FakeStore
	store *Store
}

func (s *storeTestSuite) SetupTest() {
	s.log = logging.NewFakeLogger()
	s.kv = keyvalue.NewFakeStore()
	s.store = NewStore(s.log, s.kv, reminder.NewFakeIdentityGenerator())
}

func TestStore(t *testing.T) {
	suite.Run(t, new(storeTestSuite))
}

func (s *storeTestSuite) createInput(title string, dueAt time.Time) reminder.CreateInput {
	return reminder.CreateInput{
		Type:       reminder.TypePayment,
		Title:      title,
		Amount:     c.NewOptional(decimal.NewFromInt(50), true),
		Recurrence: reminder.NewRecurrence(reminder.FrequencyMonthly, 0),
		NextDueAt:  dueAt,
		DaysBefore: 3,
		IsActive:   true,
		CreatedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *storeTestSuite) TestCreateAndGet() {
	created, err := s.store.Create(
		context.Background(),
		s.createInput("Rent", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	)
	s.Nil(err)
	s.Equal(reminder.ID("reminder-1"), created.ID)

	rem, err := s.store.GetByID(context.Background(), created.ID)
	s.Nil(err)
	s.Equal(created, rem)
}

func (s *storeTestSuite) TestGetNotFound() {
	_, err := s.store.GetByID(context.Background(), "does-not-exist")
	s.True(errors.Is(err, reminder.ErrReminderDoesNotExist))
}

func (s *storeTestSuite) TestReadPreservesInsertionOrder() {
	for _, title := range []string{"Rent", "Netflix", "Gym"} {
		_, err := s.store.Create(
			context.Background(),
			s.createInput(title, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
		)
		s.Nil(err)
	}

	reminders, err := s.store.Read(context.Background(), reminder.ReadOptions{})
	s.Nil(err)
	s.Len(reminders, 3)
	s.Equal("Rent", reminders[0].Title)
	s.Equal("Netflix", reminders[1].Title)
	s.Equal("Gym", reminders[2].Title)
}

func (s *storeTestSuite) TestReadOrdersByDueDate() {
	_, err := s.store.Create(
		context.Background(),
		s.createInput("Later", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)),
	)
	s.Nil(err)
	_, err = s.store.Create(
		context.Background(),
		s.createInput("Sooner", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	)
	s.Nil(err)

	reminders, err := s.store.Read(
		context.Background(),
		reminder.ReadOptions{OrderBy: reminder.OrderByDueAtAsc},
	)
	s.Nil(err)
	s.Len(reminders, 2)
	s.Equal("Sooner", reminders[0].Title)
	s.Equal("Later", reminders[1].Title)
}

func (s *storeTestSuite) TestReadFiltersByActive() {
	created, err := s.store.Create(
		context.Background(),
		s.createInput("Rent", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	)
	s.Nil(err)
	_, err = s.store.Create(
		context.Background(),
		s.createInput("Netflix", time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)),
	)
	s.Nil(err)
	_, err = s.store.Update(context.Background(), reminder.UpdateInput{
		ID:               created.ID,
		DoIsActiveUpdate: true,
		IsActive:         false,
	})
	s.Nil(err)

	reminders, err := s.store.Read(
		context.Background(),
		reminder.ReadOptions{IsActiveEquals: c.NewOptional(true, true)},
	)
	s.Nil(err)
	s.Len(reminders, 1)
	s.Equal("Netflix", reminders[0].Title)
}

func (s *storeTestSuite) TestDelete() {
	created, err := s.store.Create(
		context.Background(),
		s.createInput("Rent", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	)
	s.Nil(err)

	err = s.store.Delete(context.Background(), created.ID)
	s.Nil(err)

	_, err = s.store.GetByID(context.Background(), created.ID)
	s.True(errors.Is(err, reminder.ErrReminderDoesNotExist))

	err = s.store.Delete(context.Background(), created.ID)
	s.True(errors.Is(err, reminder.ErrReminderDoesNotExist))
}

func (s *storeTestSuite) TestStatePersistedAndReloaded() {
	created, err := s.store.Create(
		context.Background(),
		s.createInput("Rent", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	)
	s.Nil(err)
	lastPaidAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	_, err = s.store.Update(context.Background(), reminder.UpdateInput{
		ID:                 created.ID,
		DoLastPaidAtUpdate: true,
		LastPaidAt:         c.NewOptional(lastPaidAt, true),
	})
	s.Nil(err)
	_, err = s.store.Update(context.Background(), reminder.UpdateInput{
		ID:                    created.ID,
		DoNotifiedDueAtUpdate: true,
		NotifiedDueAt:         c.NewOptional(created.NextDueAt, true),
	})
	s.Nil(err)
	at, err := reminder.NewTimeOfDay(18, 45)
	s.Nil(err)
	err = s.store.SetNotificationTime(context.Background(), at)
	s.Nil(err)

	reloaded := NewStore(s.log, s.kv, reminder.NewFakeIdentityGenerator())
	reloaded.Load(context.Background())

	reminders, err := reloaded.Read(context.Background(), reminder.ReadOptions{})
	s.Nil(err)
	s.Len(reminders, 1)
	rem := reminders[0]
	s.Equal(created.ID, rem.ID)
	s.Equal("Rent", rem.Title)
	s.True(rem.Amount.IsPresent)
	s.True(rem.Amount.Value.Equal(decimal.NewFromInt(50)))
	s.True(rem.NextDueAt.Equal(created.NextDueAt))
	s.True(rem.LastPaidAt.IsPresent)
	s.True(rem.LastPaidAt.Value.Equal(lastPaidAt))
	s.True(rem.NotifiedDueAt.IsPresent)
	s.True(rem.NotifiedDueAt.Value.Equal(created.NextDueAt))

	loadedAt, err := reloaded.GetNotificationTime(context.Background())
	s.Nil(err)
	s.Equal("18:45", loadedAt.String())
}

func (s *storeTestSuite) TestLoadWithNoStoredState() {
	s.store.Load(context.Background())

	reminders, err := s.store.Read(context.Background(), reminder.ReadOptions{})
	s.Nil(err)
	s.Len(reminders, 0)

	at, err := s.store.GetNotificationTime(context.Background())
	s.Nil(err)
	s.Equal(reminder.DefaultNotificationTime, at)
}

func (s *storeTestSuite) TestLoadErrorStartsEmpty() {
	s.kv.GetError = errors.New("connection refused")

	s.store.Load(context.Background())

	reminders, err := s.store.Read(context.Background(), reminder.ReadOptions{})
	s.Nil(err)
	s.Len(reminders, 0)
}

func (s *storeTestSuite) TestCorruptRecordSkipped() {
	good, err := json.Marshal(encodeReminder(reminder.Reminder{
		ID:         "reminder-1",
		Type:       reminder.TypeSavings,
		Title:      "Vacation fund",
		Recurrence: reminder.NewRecurrence(reminder.FrequencyWeekly, 0),
		NextDueAt:  time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		DaysBefore: 1,
		IsActive:   true,
		CreatedAt:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}))
	s.Nil(err)
	state := storedState{
		Reminders: []json.RawMessage{
			json.RawMessage(`{"id":"reminder-0","type":"payment","next_due_date":"not-a-date"}`),
			good,
		},
		NotificationTime: "09:00",
	}
	data, err := json.Marshal(state)
	s.Nil(err)
	s.Nil(s.kv.Set(context.Background(), StorageKey, data))

	s.store.Load(context.Background())

	reminders, err := s.store.Read(context.Background(), reminder.ReadOptions{})
	s.Nil(err)
	s.Len(reminders, 1)
	s.Equal("Vacation fund", reminders[0].Title)
}

func (s *storeTestSuite) TestFailedFlushDoesNotFailMutation() {
	s.kv.SetError = errors.New("connection refused")

	created, err := s.store.Create(
		context.Background(),
		s.createInput("Rent", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	)
	s.Nil(err)

	rem, err := s.store.GetByID(context.Background(), created.ID)
	s.Nil(err)
	s.Equal("Rent", rem.Title)

	s.kv.SetError = nil
	_, err = s.store.Update(context.Background(), reminder.UpdateInput{
		ID:            created.ID,
		DoTitleUpdate: true,
		Title:         "Rent (new lease)",
	})
	s.Nil(err)

	reloaded := NewStore(s.log, s.kv, reminder.NewFakeIdentityGenerator())
	reloaded.Load(context.Background())
	reminders, err := reloaded.Read(context.Background(), reminder.ReadOptions{})
	s.Nil(err)
	s.Len(reminders, 1)
	s.Equal("Rent (new lease)", reminders[0].Title)
}
