package usecases

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"artist-membership.backend/internal/config"
	"artist-membership.backend/internal/domain/entities"
	domainerrors "artist-membership.backend/internal/domain/errors"
	"artist-membership.backend/internal/domain/gateways"
	"artist-membership.backend/internal/domain/repositories"
	"artist-membership.backend/pkg/cardimg"
	"artist-membership.backend/pkg/logger"
	"artist-membership.backend/pkg/metrics"
)

// MemberUsecase orchestrates the member lifecycle: registration, lookups,
// address updates and card rendering.
type MemberUsecase struct {
	memberRepo repositories.MemberRepository
	gateway    gateways.PaymentGateway
	pricing    *PricingService
	razorpay   config.RazorpayConfig
	membership config.MembershipConfig
}

// NewMemberUsecase creates a new member usecase
func NewMemberUsecase(
	memberRepo repositories.MemberRepository,
	gateway gateways.PaymentGateway,
	pricing *PricingService,
	razorpay config.RazorpayConfig,
	membership config.MembershipConfig,
) *MemberUsecase {
	return &MemberUsecase{
		memberRepo: memberRepo,
		gateway:    gateway,
		pricing:    pricing,
		razorpay:   razorpay,
		membership: membership,
	}
}

// Register validates the payload, rejects duplicate emails, computes the
// price, creates a gateway order (gateway mode) and persists the member.
// No member is persisted when order creation fails.
func (u *MemberUsecase) Register(ctx context.Context, input *entities.RegisterMemberInput) (*entities.RegisterMemberResponse, error) {
	input.Normalize()
	if fields := input.Validate(); len(fields) > 0 {
		return nil, domainerrors.Validation("invalid member data", fields)
	}

	_, err := u.memberRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("a member with this email already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	quote := u.pricing.Quote(entities.ArtistCategory(input.Category), input.CouponCode)

	member := &entities.Member{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		BloodGroup:    entities.BloodGroup(input.BloodGroup),
		Category:      entities.ArtistCategory(input.Category),
		PhotoURL:      input.PhotoURL,
		Address:       input.Address,
		PaymentAmount: quote.AmountINR,
		PaymentStatus: entities.PaymentStatusPending,
	}

	var order *entities.PaymentOrder
	mode := "direct"
	if u.razorpay.Enabled {
		mode = "gateway"
		receipt := "mem_" + uuid.NewString()
		order, err = u.gateway.CreateOrder(ctx, quote.AmountPaise, u.membership.Currency, receipt)
		if err != nil {
			logger.Error(ctx, "gateway order creation failed", zap.Error(err))
			return nil, domainerrors.GatewayError(err)
		}
		member.OrderID.SetValid(order.OrderID)
	} else {
		// Free-registration mode: no order, membership is active immediately
		member.PaymentStatus = entities.PaymentStatusCompleted
	}

	if err := u.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("a member with this email already exists")
		}
		return nil, domainerrors.InternalError(err)
	}

	metrics.RegistrationsTotal.WithLabelValues(mode).Inc()
	logger.Info(ctx, "member registered",
		zap.Uint("member_id", member.ID),
		zap.String("card_number", member.CardNumber),
		zap.String("mode", mode),
	)

	return &entities.RegisterMemberResponse{
		Success: true,
		Message: "Member created successfully",
		Member:  member,
		Order:   order,
	}, nil
}

// GetMember gets a member by id
func (u *MemberUsecase) GetMember(ctx context.Context, id uint) (*entities.Member, error) {
	member, err := u.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("member not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return member, nil
}

// GetMemberByEmail gets a member by email
func (u *MemberUsecase) GetMemberByEmail(ctx context.Context, email string) (*entities.Member, error) {
	member, err := u.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("member not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return member, nil
}

// ListMembers returns members with pagination
func (u *MemberUsecase) ListMembers(ctx context.Context, limit, offset int) ([]*entities.Member, int, error) {
	members, total, err := u.memberRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	return members, total, nil
}

// UpdateAddress overwrites the member's address
func (u *MemberUsecase) UpdateAddress(ctx context.Context, id uint, address string) (*entities.Member, error) {
	member, err := u.memberRepo.UpdateAddress(ctx, id, address)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("member not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return member, nil
}

// RenderCard renders the membership card PNG for a completed member.
// Cards are re-rendered on demand, never cached.
func (u *MemberUsecase) RenderCard(ctx context.Context, id uint) ([]byte, string, error) {
	member, err := u.GetMember(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if member.PaymentStatus != entities.PaymentStatusCompleted {
		return nil, "", domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeCardNotReady,
			"membership card is available after payment completes", domainerrors.ErrCardNotReady)
	}

	img, err := cardimg.Render(cardimg.Card{
		Name:       member.Name,
		Category:   string(member.Category),
		CardNumber: member.CardNumber,
		BloodGroup: string(member.BloodGroup),
		Phone:      member.Phone,
		PhotoURL:   member.PhotoURL,
	})
	if err != nil {
		return nil, "", domainerrors.InternalError(err)
	}
	return img, cardimg.Filename(member.CardNumber), nil
}
