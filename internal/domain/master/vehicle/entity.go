package vehicle

import "time"

// Type is the kind of machine; it matches the job type the vehicle works on.
type Type string

const (
	TypeJCB   Type = "jcb"
	TypeLorry Type = "lorry"
)

func (t Type) IsValid() bool {
	return t == TypeJCB || t == TypeLorry
}

type Vehicle struct {
	ID             string
	RegistrationNo string
	Type           Type
	Model          *string
	IsActive       bool
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
