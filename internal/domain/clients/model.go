package clients

import "time"

// Client es el dueño de una o más mascotas.
type Client struct {
	ID     string  `json:"id"`
	UserID *string `json:"user_id,omitempty"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`

	Address  string `json:"address"`
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	MarketingOptIn        bool   `json:"marketing_opt_in"`
	Notes                 string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`

	// Solo en listados: email del usuario vinculado, o el del cliente.
	LoginEmail string `json:"login_email,omitempty"`
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
