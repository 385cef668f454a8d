package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task is the envelope stored in the queue.
type Task struct {
	ID         uuid.UUID       `json:"id"`
	Name       TaskName        `json:"name"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

type ServiceImporterPayload struct {
	Service    string    `json:"service"`
	ImporterID uuid.UUID `json:"importerId"`
}

type SendWelcomeEmailPayload struct {
	UserID    uuid.UUID `json:"userId"`
	IsNewUser bool      `json:"isNewUser"`
	Reason    string    `json:"reason"`
}
