package api

import (
	"context"
	"errors"
	"net/http"

	"studio-ledger/internal/domain/redemption"
	reqdto "studio-ledger/internal/handler/dto/request"
	resdto "studio-ledger/internal/handler/dto/response"
	"studio-ledger/internal/handler/middleware"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/pkg/errs"
	"studio-ledger/internal/usecase/commands"
	"studio-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RedemptionHandler struct {
	redemptionCommands commands.RedemptionCommands
	redemptionQueries  queries.RedemptionQueries
}

func NewRedemptionHandler(
	redemptionCommands commands.RedemptionCommands,
	redemptionQueries queries.RedemptionQueries,
) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionCommands: redemptionCommands,
		redemptionQueries:  redemptionQueries,
	}
}

// @Summary Create redemption
// @Description Create a pending package redemption for a member
// @Tags redemptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRedemptionRequest true "Redemption request"
// @Success 201 {object} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /redemptions [post]
func (h *RedemptionHandler) CreateRedemption(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateRedemptionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.CreateRedemptionRequest{
		MemberID:   req.MemberID,
		PackageID:  req.PackageID,
		CouponID:   req.CouponID,
		CouponCode: req.GetCouponCode(),
		Notes:      req.GetNotes(),
	}

	created, err := h.redemptionCommands.Create(c.Request.Context(), principal, params)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Member not found",
			})
		case errors.Is(err, errs.ErrPackageNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Package not found",
			})
		case errors.Is(err, errs.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
			})
		case errors.Is(err, errs.ErrPackageInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Package is not active",
			})
		case errors.Is(err, errs.ErrCouponInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Coupon is not active",
			})
		case errors.Is(err, errs.ErrCouponNotYetValid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Coupon is not yet valid",
			})
		case errors.Is(err, errs.ErrCouponExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Coupon has expired",
			})
		case errors.Is(err, errs.ErrRedemptionLimitReached):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon redemption limit reached",
			})
		case errors.Is(err, errs.ErrPerMemberLimitReached):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon per-member limit reached",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRedemption(created))
}

// @Summary Approve redemption
// @Description Approve a pending redemption, applying credits and entitlements
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Redemption ID"
// @Success 200 {object} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /redemptions/{id}/approve [post]
func (h *RedemptionHandler) ApproveRedemption(c *gin.Context) {
	h.transition(c, h.redemptionCommands.Approve)
}

// @Summary Cancel redemption
// @Description Cancel a pending redemption before any side effects apply
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Redemption ID"
// @Success 200 {object} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /redemptions/{id}/cancel [post]
func (h *RedemptionHandler) CancelRedemption(c *gin.Context) {
	h.transition(c, h.redemptionCommands.Cancel)
}

// @Summary Get redemption
// @Description Get redemption by ID
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Redemption ID"
// @Success 200 {object} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /redemptions/{id} [get]
func (h *RedemptionHandler) GetRedemption(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid redemption ID format",
		})
		return
	}

	view, err := h.redemptionQueries.GetByID(c.Request.Context(), principal.OrganizationID, id)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedemptionView(view))
}

// @Summary List member redemptions
// @Description List redemptions for a member, newest first
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {array} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /members/{id}/redemptions [get]
func (h *RedemptionHandler) ListMemberRedemptions(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid member ID format",
		})
		return
	}

	views, err := h.redemptionQueries.ListByMember(c.Request.Context(), principal.OrganizationID, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RedemptionResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromRedemptionView(v)
	}

	c.JSON(http.StatusOK, response)
}

func (h *RedemptionHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, principal commands.Principal, id uuid.UUID) (*redemption.Redemption, error),
) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid redemption ID format",
		})
		return
	}

	result, err := op(c.Request.Context(), principal, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRedemptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Redemption not found",
			})
		case errors.Is(err, errs.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Member not found",
			})
		case errors.Is(err, errs.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Redemption is not in a pending state",
			})
		case errors.Is(err, errs.ErrRedemptionLimitReached):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon redemption limit reached",
			})
		case errors.Is(err, errs.ErrPerMemberLimitReached):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon per-member limit reached",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedemption(result))
}

func (h *RedemptionHandler) respondQueryError(c *gin.Context, err error) {
	if infra.IsKind(err, infra.KindNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Redemption not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
