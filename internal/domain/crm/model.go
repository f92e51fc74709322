package crm

import "time"

type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

type Notification struct {
	ID           string             `json:"id"`
	ClientID     string             `json:"client_id"`
	Channel      string             `json:"channel"`
	TemplateCode string             `json:"template_code"`
	Content      string             `json:"content"`
	Status       NotificationStatus `json:"status"`
	Attributes   map[string]string  `json:"attributes"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Direction de un mensaje respecto del daycare.
// @Enum inbound, outbound
type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

type Message struct {
	ID               string    `json:"id"`
	ClientID         string    `json:"client_id"`
	Direction        Direction `json:"direction"`
	Channel          string    `json:"channel"`
	Content          string    `json:"content"`
	StaffUserID      *string   `json:"staff_user_id,omitempty"`
	RelatedBookingID *string   `json:"related_booking_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	// Solo en listados.
	StaffName  string `json:"staff_name,omitempty"`
	ClientName string `json:"client_name,omitempty"`
}
