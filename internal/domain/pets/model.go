package pets

import "time"

// Gender de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Pet representa el perfil de un perro cliente del daycare.
type Pet struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`

	Name      string     `json:"name"`
	Breed     string     `json:"breed"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    Gender     `json:"gender"`
	Colour    string     `json:"colour"`

	MedicalNotes        string `json:"medical_notes"`
	FeedingInstructions string `json:"feeding_instructions"`
	BehaviourFlags      string `json:"behaviour_flags"`
	Allergies           string `json:"allergies"`
	PhotoURL            string `json:"photo_url"`

	// Archived: baja lógica, nunca se borra.
	Archived bool `json:"archived"`

	CreatedAt time.Time `json:"created_at"`

	// Solo en listados.
	OwnerName string `json:"owner_name,omitempty"`
}

// Vaccination es un registro de vacuna con su vencimiento.
type Vaccination struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	VaccineName string    `json:"vaccine_name"`
	ExpiryDate  time.Time `json:"expiry_date"`
	DocumentURL string    `json:"document_url"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
