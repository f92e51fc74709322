package activity

// ActivityType clasifica las entradas del registro diario de una mascota.
// Se aceptan valores libres; estos son los que usa el staff habitualmente.
type ActivityType string

const (
	ActivityMeal       ActivityType = "meal"
	ActivityWalk       ActivityType = "walk"
	ActivityPlay       ActivityType = "play"
	ActivityNap        ActivityType = "nap"
	ActivityMedication ActivityType = "medication"
	ActivityGrooming   ActivityType = "grooming"
	ActivityIncident   ActivityType = "incident"
	ActivityPhoto      ActivityType = "photo"
)

// FlagType de una nota de cuidado.
type FlagType string

const (
	FlagBehaviour FlagType = "behaviour"
	FlagMedical   FlagType = "medical"
	FlagDiet      FlagType = "diet"
	FlagGeneral   FlagType = "general"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)
