package api

import (
	"errors"
	"net/http"

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

type LedgerHandler struct {
	ledgerCommands commands.LedgerCommands
	ledgerQueries  queries.LedgerQueries
}

func NewLedgerHandler(
	ledgerCommands commands.LedgerCommands,
	ledgerQueries queries.LedgerQueries,
) *LedgerHandler {
	return &LedgerHandler{
		ledgerCommands: ledgerCommands,
		ledgerQueries:  ledgerQueries,
	}
}

// @Summary Adjust member balance
// @Description Apply a manual credit adjustment (delta or absolute target)
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body reqdto.AdjustBalanceRequest true "Adjustment request"
// @Success 200 {object} resdto.AdjustBalanceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /members/{id}/balance [post]
func (h *LedgerHandler) AdjustBalance(c *gin.Context) {
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

	var req reqdto.AdjustBalanceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	if !req.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Exactly one of delta or absolute must be set",
		})
		return
	}

	params := commands.AdjustBalanceRequest{
		Delta:       req.Delta,
		Absolute:    req.Absolute,
		Description: req.Description,
	}

	result, err := h.ledgerCommands.AdjustBalance(c.Request.Context(), principal, memberID, params)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Member not found",
			})
		case errors.Is(err, errs.ErrZeroAmountChange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Adjustment amount required",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAdjustBalanceResult(result))
}

// @Summary Get member
// @Description Get a member's balance and entitlement state
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} resdto.MemberResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /members/{id} [get]
func (h *LedgerHandler) GetMember(c *gin.Context) {
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

	view, err := h.ledgerQueries.GetMember(c.Request.Context(), principal.OrganizationID, memberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Member not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromMemberView(view))
}

// @Summary List member transactions
// @Description List the member's credit audit trail, oldest first
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {array} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /members/{id}/transactions [get]
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
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

	views, err := h.ledgerQueries.ListTransactions(c.Request.Context(), principal.OrganizationID, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.TransactionResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromTransactionView(v)
	}

	c.JSON(http.StatusOK, response)
}
