package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"artist-membership.backend/internal/domain/entities"
	domainerrors "artist-membership.backend/internal/domain/errors"
	"artist-membership.backend/internal/infrastructure/models"
)

// MemberRepository implements member data operations on gorm (durable variant)
type MemberRepository struct {
	db         *gorm.DB
	cardPrefix string
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB, cardPrefix string) *MemberRepository {
	return &MemberRepository{db: db, cardPrefix: cardPrefix}
}

// Create inserts a member and assigns id plus card number in one transaction.
// The unique index on email backs the service-level duplicate check.
func (r *MemberRepository) Create(ctx context.Context, member *entities.Member) error {
	m := r.toModel(member)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		m.CardNumber = entities.FormatCardNumber(r.cardPrefix, m.ID)
		return tx.Model(&models.Member{}).
			Where("id = ?", m.ID).
			Update("card_number", m.CardNumber).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}

	*member = *r.toEntity(m)
	return nil
}

// GetByID gets a member by ID
func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*entities.Member, error) {
	var m models.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a member by email
func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*entities.Member, error) {
	var m models.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns members with pagination plus the total count
func (r *MemberRepository) List(ctx context.Context, limit, offset int) ([]*entities.Member, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Order("id ASC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ms []models.Member
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	members := make([]*entities.Member, 0, len(ms))
	for i := range ms {
		members = append(members, r.toEntity(&ms[i]))
	}
	return members, int(total), nil
}

// UpdateStatusByOrderID transitions the payment status of the member holding
// the given gateway order reference and returns the updated record. Only
// members still pending are transitioned; a settled member is returned as-is
// so repeated callbacks stay idempotent and never downgrade the status.
func (r *MemberRepository) UpdateStatusByOrderID(ctx context.Context, orderID string, status entities.PaymentStatus) (*entities.Member, error) {
	updates := map[string]interface{}{
		"payment_status": string(status),
		"updated_at":     time.Now(),
	}
	if status == entities.PaymentStatusCompleted {
		updates["paid_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("order_id = ? AND payment_status = ?", orderID, string(entities.PaymentStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	var m models.Member
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateAddress overwrites the member's address and returns the updated record
func (r *MemberRepository) UpdateAddress(ctx context.Context, id uint, address string) (*entities.Member, error) {
	result := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"address":    address,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// CountPendingOlderThan counts members still pending since before the cutoff
func (r *MemberRepository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("payment_status = ? AND created_at < ?", string(entities.PaymentStatusPending), cutoff).
		Count(&count).Error
	return count, err
}

func (r *MemberRepository) toModel(e *entities.Member) *models.Member {
	m := &models.Member{
		ID:            e.ID,
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		BloodGroup:    string(e.BloodGroup),
		Category:      string(e.Category),
		PhotoURL:      e.PhotoURL,
		Address:       e.Address,
		PaymentAmount: e.PaymentAmount,
		PaymentStatus: string(e.PaymentStatus),
		CardNumber:    e.CardNumber,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.OrderID.Valid {
		v := e.OrderID.String
		m.OrderID = &v
	}
	if e.PaidAt.Valid {
		v := e.PaidAt.Time
		m.PaidAt = &v
	}
	return m
}

func (r *MemberRepository) toEntity(m *models.Member) *entities.Member {
	return &entities.Member{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		BloodGroup:    entities.BloodGroup(m.BloodGroup),
		Category:      entities.ArtistCategory(m.Category),
		PhotoURL:      m.PhotoURL,
		Address:       m.Address,
		PaymentAmount: m.PaymentAmount,
		PaymentStatus: entities.PaymentStatus(m.PaymentStatus),
		CardNumber:    m.CardNumber,
		OrderID:       null.StringFromPtr(m.OrderID),
		PaidAt:        null.TimeFromPtr(m.PaidAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// isUniqueViolation detects unique-index violations across postgres and the
// sqlite driver used in tests
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
