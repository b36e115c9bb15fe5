package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-module/carbon/v2"
)

var ErrParseFrequency = errors.New("invalid frequency")

type Frequency struct {
	v string
}

func (f Frequency) String() string {
	return f.v
}

func ParseFrequency(value string) (Frequency, error) {
	switch value {
	case "weekly":
		return FrequencyWeekly, nil
	case "biweekly":
		return FrequencyBiweekly, nil
	case "monthly":
		return FrequencyMonthly, nil
	case "quarterly":
		return FrequencyQuarterly, nil
	case "yearly":
		return FrequencyYearly, nil
	case "custom":
		return FrequencyCustom, nil
	default:
		return FrequencyUnknown, ErrParseFrequency
	}
}

var (
	FrequencyUnknown   = Frequency{}
	FrequencyWeekly    = Frequency{v: "weekly"}
	FrequencyBiweekly  = Frequency{v: "biweekly"}
	FrequencyMonthly   = Frequency{v: "monthly"}
	FrequencyQuarterly = Frequency{v: "quarterly"}
	FrequencyYearly    = Frequency{v: "yearly"}
	FrequencyCustom    = Frequency{v: "custom"}
)

// Recurrence describes how a reminder's due date advances once it is settled.
// CustomDays is meaningful only for the custom frequency.
type Recurrence struct {
	Frequency  Frequency
	CustomDays int
}

func NewRecurrence(f Frequency, customDays int) Recurrence {
	return Recurrence{Frequency: f, CustomDays: customDays}
}

func (r Recurrence) String() string {
	if r.Frequency == FrequencyCustom {
		return fmt.Sprintf("every %d days", r.CustomDays)
	}
	return r.Frequency.String()
}

func (r Recurrence) Validate() error {
	if r.Frequency == FrequencyUnknown {
		return ErrParseFrequency
	}
	if r.Frequency == FrequencyCustom && r.CustomDays <= 0 {
		return ErrInvalidCustomDays
	}
	return nil
}

// NextFrom returns the next due date after t. Month and year additions never
// overflow into the following month: a Jan 31 anchor lands on the last day of
// February, a Feb 29 anchor lands on Feb 28 of a non-leap year.
func (r Recurrence) NextFrom(t time.Time) (time.Time, error) {
	if err := r.Validate(); err != nil {
		return t, err
	}
	switch r.Frequency {
	case FrequencyWeekly:
		return carbon.Time2Carbon(t).AddDays(7).Carbon2Time(), nil
	case FrequencyBiweekly:
		return carbon.Time2Carbon(t).AddDays(14).Carbon2Time(), nil
	case FrequencyMonthly:
		return carbon.Time2Carbon(t).AddMonthsNoOverflow(1).Carbon2Time(), nil
	case FrequencyQuarterly:
		return carbon.Time2Carbon(t).AddMonthsNoOverflow(3).Carbon2Time(), nil
	case FrequencyYearly:
		return carbon.Time2Carbon(t).AddYearsNoOverflow(1).Carbon2Time(), nil
	case FrequencyCustom:
		return carbon.Time2Carbon(t).AddDays(r.CustomDays).Carbon2Time(), nil
	default:
		panic(fmt.Sprintf("unexpected frequency: %v", r.Frequency))
	}
}
