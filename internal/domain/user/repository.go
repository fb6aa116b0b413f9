package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
}

// Verified is the slice of a user the auth gate needs on every request.
type Verified struct {
	ID     uint   `json:"id"`
	Role   string `json:"role"`
	Rights string `json:"rights"`
}

func VerifiedFrom(u *models.User) Verified {
	return Verified{ID: u.ID, Role: u.Role, Rights: u.Rights}
}

// VerifiedCache holds Verified entries for a fixed TTL. Get returns
// nil without error on a miss. Writers of attendance, rights or
// credentials must call Invalidate.
type VerifiedCache interface {
	Get(ctx context.Context, id uint) (*Verified, error)
	Put(ctx context.Context, v Verified) error
	Invalidate(ctx context.Context, id uint) error
}
