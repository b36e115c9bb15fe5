package schema

import (
	"encoding/json"
	"time"
)

type Notification struct {
	ReminderID string
	DueAt      time.Time
	FireAt     time.Time
}

func (n *Notification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) Unmarshal(data []byte) error {
	return json.Unmarshal(data, n)
}
