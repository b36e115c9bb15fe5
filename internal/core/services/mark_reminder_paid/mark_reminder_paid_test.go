package markreminderpaid

import (
	"context"
	"testing"
	"time"

	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	repository *reminder.FakeRepository
	settings   *reminder.FakeSettingsRepository
	scheduler  *reminder.FakeNotificationScheduler
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.repository = reminder.NewFakeRepository()
	suite.settings = reminder.NewFakeSettingsRepository()
	suite.scheduler = reminder.NewFakeNotificationScheduler()
	suite.service = New(
		suite.logger,
		suite.repository,
		suite.settings,
		suite.scheduler,
		false,
		func() time.Time { return Now },
	)
}

func TestMarkReminderPaidService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestAdvancesDueDateInPlace() {
	rem, err := s.repository.Create(context.Background(), reminder.CreateInput{
		Type:       reminder.TypePayment,
		Title:      "Rent",
		Recurrence: reminder.NewRecurrence(reminder.FrequencyMonthly, 0),
		NextDueAt:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		DaysBefore: 3,
		IsActive:   true,
	})
	s.Require().Nil(err)

	result, err := s.service.Run(context.Background(), Input{ReminderID: rem.ID})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(rem.ID, result.Reminder.ID)
	assert.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), result.Reminder.NextDueAt)
	assert.Equal(Now, result.Reminder.LastPaidAt.Value)
	assert.True(result.Reminder.LastPaidAt.IsPresent)

	// In-place advancement keeps a single record.
	reminders, err := s.repository.Read(context.Background(), reminder.ReadOptions{})
	assert.Nil(err)
	assert.Len(reminders, 1)
}

func (s *testSuite) TestSupersedesPendingNotification() {
	rem, err := s.repository.Create(context.Background(), reminder.CreateInput{
		Title:      "Rent",
		Recurrence: reminder.NewRecurrence(reminder.FrequencyMonthly, 0),
		NextDueAt:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		DaysBefore: 3,
		IsActive:   true,
	})
	s.Require().Nil(err)

	_, err = s.service.Run(context.Background(), Input{ReminderID: rem.ID})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.scheduler.Scheduled, 1)
	notification := s.scheduler.Scheduled[0]
	assert.Equal(rem.ID, notification.ReminderID)
	assert.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), notification.DueAt)
	assert.Equal(time.Date(2024, 2, 26, 9, 0, 0, 0, time.UTC), notification.FireAt)
}

func (s *testSuite) TestInvalidCustomConfigurationLeavesReminderUnchanged() {
	rem, err := s.repository.Create(context.Background(), reminder.CreateInput{
		Title:      "Broken",
		Recurrence: reminder.NewRecurrence(reminder.FrequencyCustom, 0),
		NextDueAt:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	})
	s.Require().Nil(err)

	_, err = s.service.Run(context.Background(), Input{ReminderID: rem.ID})

	assert := s.Require()
	assert.ErrorIs(err, reminder.ErrInvalidCustomDays)
	stored, getErr := s.repository.GetByID(context.Background(), rem.ID)
	assert.Nil(getErr)
	assert.Equal(rem.NextDueAt, stored.NextDueAt)
	assert.False(stored.LastPaidAt.IsPresent)
	assert.Empty(s.scheduler.Scheduled)
}

func (s *testSuite) TestReminderDoesNotExist() {
	_, err := s.service.Run(context.Background(), Input{ReminderID: reminder.ID("missing")})

	s.Require().ErrorIs(err, reminder.ErrReminderDoesNotExist)
}
