package repositories

import (
	"context"
	"sync"
	"time"

	"artist-membership.backend/internal/domain/entities"
	domainerrors "artist-membership.backend/internal/domain/errors"
)

// MemoryMemberRepository is the ephemeral in-process variant of the member
// store. IDs are sequential integers and live only for the process lifetime.
// All operations serialize on a single mutex, which also makes the
// email-uniqueness check atomic with the insert.
type MemoryMemberRepository struct {
	mu         sync.Mutex
	cardPrefix string
	nextID     uint
	byID       map[uint]*entities.Member
	byEmail    map[string]uint
	byOrderID  map[string]uint
}

// NewMemoryMemberRepository creates an empty in-memory member repository
func NewMemoryMemberRepository(cardPrefix string) *MemoryMemberRepository {
	return &MemoryMemberRepository{
		cardPrefix: cardPrefix,
		nextID:     1,
		byID:       map[uint]*entities.Member{},
		byEmail:    map[string]uint{},
		byOrderID:  map[string]uint{},
	}
}

// Create assigns the next sequential id and the derived card number
func (r *MemoryMemberRepository) Create(_ context.Context, member *entities.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[member.Email]; exists {
		return domainerrors.ErrAlreadyExists
	}

	now := time.Now()
	member.ID = r.nextID
	r.nextID++
	member.CardNumber = entities.FormatCardNumber(r.cardPrefix, member.ID)
	member.CreatedAt = now
	member.UpdatedAt = now

	stored := *member
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	if stored.OrderID.Valid {
		r.byOrderID[stored.OrderID.String] = stored.ID
	}
	return nil
}

// GetByID gets a member by ID
func (r *MemoryMemberRepository) GetByID(_ context.Context, id uint) (*entities.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *m
	return &out, nil
}

// GetByEmail gets a member by email
func (r *MemoryMemberRepository) GetByEmail(_ context.Context, email string) (*entities.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

// List returns members ordered by id with pagination plus the total count
func (r *MemoryMemberRepository) List(_ context.Context, limit, offset int) ([]*entities.Member, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := len(r.byID)
	members := make([]*entities.Member, 0, total)
	for id := uint(1); id < r.nextID; id++ {
		if m, ok := r.byID[id]; ok {
			out := *m
			members = append(members, &out)
		}
	}

	if offset >= len(members) {
		return []*entities.Member{}, total, nil
	}
	members = members[offset:]
	if limit > 0 && limit < len(members) {
		members = members[:limit]
	}
	return members, total, nil
}

// UpdateStatusByOrderID transitions the payment status of the member holding
// the given gateway order reference
func (r *MemoryMemberRepository) UpdateStatusByOrderID(_ context.Context, orderID string, status entities.PaymentStatus) (*entities.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byOrderID[orderID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	m := r.byID[id]
	if m.PaymentStatus == entities.PaymentStatusPending {
		m.PaymentStatus = status
		m.UpdatedAt = time.Now()
		if status == entities.PaymentStatusCompleted {
			m.PaidAt.SetValid(time.Now())
		}
	}
	out := *m
	return &out, nil
}

// UpdateAddress overwrites the member's address
func (r *MemoryMemberRepository) UpdateAddress(_ context.Context, id uint, address string) (*entities.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	m.Address = address
	m.UpdatedAt = time.Now()
	out := *m
	return &out, nil
}

// CountPendingOlderThan counts members still pending since before the cutoff
func (r *MemoryMemberRepository) CountPendingOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, m := range r.byID {
		if m.PaymentStatus == entities.PaymentStatusPending && m.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}
