package reminder

import (
	"context"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	"github.com/shopspring/decimal"
)

type CreateInput struct {
	Type       Type
	Title      string
	Amount     c.Optional[decimal.Decimal]
	Category   c.Optional[string]
	Notes      c.Optional[string]
	Recurrence Recurrence
	NextDueAt  time.Time
	DaysBefore uint
	IsActive   bool
	CreatedAt  time.Time
}

type ReadOptions struct {
	IsActiveEquals c.Optional[bool]
	TypeEquals     c.Optional[Type]
	OrderBy        OrderBy
}

type UpdateInput struct {
	ID                    ID
	DoTitleUpdate         bool
	Title                 string
	DoAmountUpdate        bool
	Amount                c.Optional[decimal.Decimal]
	DoCategoryUpdate      bool
	Category              c.Optional[string]
	DoNotesUpdate         bool
	Notes                 c.Optional[string]
	DoRecurrenceUpdate    bool
	Recurrence            Recurrence
	DoNextDueAtUpdate     bool
	NextDueAt             time.Time
	DoDaysBeforeUpdate    bool
	DaysBefore            uint
	DoIsActiveUpdate      bool
	IsActive              bool
	DoLastPaidAtUpdate    bool
	LastPaidAt            c.Optional[time.Time]
	DoNotifiedDueAtUpdate bool
	NotifiedDueAt         c.Optional[time.Time]
}

// Repository owns the reminder collection. Read returns reminders in
// insertion order unless OrderBy is set.
type Repository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	GetByID(ctx context.Context, id ID) (Reminder, error)
	Read(ctx context.Context, options ReadOptions) ([]Reminder, error)
	Update(ctx context.Context, input UpdateInput) (Reminder, error)
	Delete(ctx context.Context, id ID) error
}

// SettingsRepository holds the process-wide notification time of day.
type SettingsRepository interface {
	GetNotificationTime(ctx context.Context) (TimeOfDay, error)
	SetNotificationTime(ctx context.Context, at TimeOfDay) error
}

type IdentityGenerator interface {
	GenerateReminderID() ID
}
