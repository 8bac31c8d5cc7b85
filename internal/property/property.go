package property

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
)

// ErrInvalid marks a property that fails validation for reasons other than
// its timezone; timezone failures carry opday.ErrInvalidTimezone instead.
var ErrInvalid = errors.New("property: invalid")

// Property is a managed site. Its timezone decides where every operational
// day begins.
type Property struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New builds and validates a property with a fresh id.
func New(name, timezone string) (Property, error) {
	now := time.Now().UTC()
	p := Property{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Timezone:  strings.TrimSpace(timezone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return p, p.Validate()
}

func (p Property) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if _, err := opday.LoadZone(p.Timezone); err != nil {
		return err
	}
	return nil
}

// Zone resolves the property's timezone.
func (p Property) Zone() (opday.Zone, error) {
	return opday.LoadZone(p.Timezone)
}

// Store is the read side other packages depend on.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (Property, error)
	List(ctx context.Context) ([]Property, error)
}

// Registry is the full read-write property store.
type Registry interface {
	Store
	Creator
	UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) error
}
