package repositories

import (
	"context"
	"time"

	"artist-membership.backend/internal/domain/entities"
)

// MemberRepository defines member data operations.
//
// Create assigns the id and the derived card number atomically; both are
// immutable afterwards. Email uniqueness is enforced at this boundary as a
// backstop to the service-level duplicate check and surfaces as
// ErrAlreadyExists.
type MemberRepository interface {
	Create(ctx context.Context, member *entities.Member) error
	GetByID(ctx context.Context, id uint) (*entities.Member, error)
	GetByEmail(ctx context.Context, email string) (*entities.Member, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Member, int, error)
	UpdateStatusByOrderID(ctx context.Context, orderID string, status entities.PaymentStatus) (*entities.Member, error)
	UpdateAddress(ctx context.Context, id uint, address string) (*entities.Member, error)
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
