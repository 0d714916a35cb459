package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artist-membership.backend/internal/domain/entities"
	domainerrors "artist-membership.backend/internal/domain/errors"
	"artist-membership.backend/internal/interfaces/http/response"
	"artist-membership.backend/internal/usecases"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberUsecase *usecases.MemberUsecase
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberUsecase *usecases.MemberUsecase) *MemberHandler {
	return &MemberHandler{memberUsecase: memberUsecase}
}

// Register handles member registration
// POST /api/members
func (h *MemberHandler) Register(c *gin.Context) {
	var input entities.RegisterMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	resp, err := h.memberUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetMember gets a member by id
// GET /api/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}

	member, err := h.memberUsecase.GetMember(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"member":  member,
	})
}

// ListMembers lists members with pagination
// GET /api/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	members, total, err := h.memberUsecase.ListMembers(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"members": members,
		"total":   total,
	})
}

// UpdateAddress overwrites a member's address
// PUT /api/members/:id/address
func (h *MemberHandler) UpdateAddress(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}

	var input entities.UpdateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("invalid request data", map[string]string{
			"address": "address must be between 5 and 255 characters",
		}))
		return
	}

	member, err := h.memberUsecase.UpdateAddress(c.Request.Context(), id, input.Address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": "Member address updated successfully",
		"member":  member,
	})
}

// GetCard renders the membership card PNG for download
// GET /api/members/:id/card
func (h *MemberHandler) GetCard(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}

	img, filename, err := h.memberUsecase.RenderCard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Data(http.StatusOK, "image/png", img)
}

func parseMemberID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid member id"))
		return 0, false
	}
	return uint(id), true
}
