package reminder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrParseTimeOfDay = errors.New("invalid time of day, expected HH:mm")

// TimeOfDay is the wall-clock time at which notifications fire,
// applied uniformly to all reminders.
type TimeOfDay struct {
	hour   int
	minute int
}

func NewTimeOfDay(hour int, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrParseTimeOfDay
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, ErrParseTimeOfDay
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, ErrParseTimeOfDay
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, ErrParseTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// On returns day's date with the time of day set to t.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.hour, t.minute, 0, 0, day.Location())
}

var DefaultNotificationTime = TimeOfDay{hour: 9, minute: 0}
