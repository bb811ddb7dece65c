package api

import (
	"errors"
	"net/http"

	reqdto "studio-ledger/internal/handler/dto/request"
	resdto "studio-ledger/internal/handler/dto/response"
	"studio-ledger/internal/handler/middleware"
	"studio-ledger/internal/pkg/errs"
	"studio-ledger/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsageHandler struct {
	usageCommands commands.UsageCommands
}

func NewUsageHandler(usageCommands commands.UsageCommands) *UsageHandler {
	return &UsageHandler{usageCommands: usageCommands}
}

// @Summary Record daily usage
// @Description Consume one calendar day of an active all-access entitlement
// @Tags usage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Redemption ID"
// @Param request body reqdto.RecordDailyUsageRequest true "Usage request"
// @Success 201 {object} resdto.DailyUsageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /redemptions/{id}/usages [post]
func (h *UsageHandler) RecordDailyUsage(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	redemptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid redemption ID format",
		})
		return
	}

	var req reqdto.RecordDailyUsageRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.RecordDailyUsageRequest{
		RedemptionID: redemptionID,
		BookingID:    req.BookingID,
		UsageDate:    req.UsageDate,
	}

	recorded, err := h.usageCommands.RecordDailyUsage(c.Request.Context(), principal, params)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRedemptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Redemption not found",
			})
		case errors.Is(err, errs.ErrRedemptionNotActive):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Redemption is not active",
			})
		case errors.Is(err, errs.ErrDayAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Entitlement already used for this day",
			})
		case errors.Is(err, errs.ErrEntitlementExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Entitlement does not cover this day",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromDailyUsage(recorded))
}
