package identity

import (
	"testing"

	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
)

func TestIdentityGenerator(t *testing.T) {
	generator := NewUUID()
	ids := make(map[reminder.ID]struct{})
	for i := 0; i < 100; i++ {
		id := generator.GenerateReminderID()
		if string(id) == "" {
			t.Fatal("id must not be empty")
		}
		if _, ok := ids[id]; ok {
			t.Fatalf("id %v already exists (%v)", id, ids)
		}
		ids[id] = struct{}{}
	}
}
