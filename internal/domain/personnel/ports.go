package personnel

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for people
type Repository interface {
	FindAll(ctx context.Context) ([]*Person, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Person, error)
	Save(ctx context.Context, p *Person) error
}
