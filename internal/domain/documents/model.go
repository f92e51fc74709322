package documents

import "time"

type Document struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Content           string    `json:"content"`
	RequiresSignature bool      `json:"requires_signature"`
	CreatedAt         time.Time `json:"created_at"`
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Assignment es un documento asignado a un cliente para completar/firmar.
type Assignment struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	ClientID   string `json:"client_id"`

	Status       Status            `json:"status"`
	DueDate      *time.Time        `json:"due_date,omitempty"`
	SignedAt     *time.Time        `json:"signed_at,omitempty"`
	CapturedData map[string]string `json:"captured_data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Solo en listados.
	DocumentName string `json:"document_name,omitempty"`
}
