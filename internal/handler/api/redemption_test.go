//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/handler/api"
	resdto "studio-ledger/internal/handler/dto/response"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/pkg/errs"
	"studio-ledger/internal/usecase/commands"
	"studio-ledger/internal/usecase/queries"
	"studio-ledger/tests/common/builder"
	"studio-ledger/tests/common/httptest"
	commandsmock "studio-ledger/tests/mock/commands"
	queriesmock "studio-ledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedemptionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRedemptionCommands
	mockQueries  *queriesmock.MockRedemptionQueries
	handler      *api.RedemptionHandler
	principal    commands.Principal
}

func (s *RedemptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRedemptionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRedemptionQueries(s.mockCtrl)
	s.handler = api.NewRedemptionHandler(s.mockCommands, s.mockQueries)

	s.principal = commands.Principal{
		ActorID:        uuid.New(),
		OrganizationID: uuid.New(),
		Role:           commands.RoleAdmin,
	}

	// stand-in for the JWT middleware
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		c.Set("principal", s.principal)
		c.Next()
	}

	s.router.POST("/redemptions", authMiddleware, s.handler.CreateRedemption)
	s.router.GET("/redemptions/:id", authMiddleware, s.handler.GetRedemption)
	s.router.POST("/redemptions/:id/approve", authMiddleware, s.handler.ApproveRedemption)
	s.router.POST("/redemptions/:id/cancel", authMiddleware, s.handler.CancelRedemption)
	s.router.GET("/members/:id/redemptions", authMiddleware, s.handler.ListMemberRedemptions)
}

func (s *RedemptionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRedemptionHandlerSuite(t *testing.T) {
	suite.Run(t, new(RedemptionHandlerTestSuite))
}

// ================================================================================
// TestCreateRedemption
// ================================================================================

func (s *RedemptionHandlerTestSuite) TestCreateRedemption() {
	url := "/redemptions"

	pending := builder.NewRedemptionBuilder().BuildEntity()
	reqBody := map[string]any{
		"member_id":  pending.MemberID().String(),
		"package_id": pending.PackageID().String(),
	}

	s.Run("success: returns 201 Created with pending redemption", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.principal, gomock.Any()).
			Return(pending, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.RedemptionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(pending.ID(), response.ID)
		s.Equal(string(redemption.StatusPending), response.Status)
	})

	s.Run("error: 400 Bad Request when member_id missing", func() {
		body := map[string]any{"package_id": pending.PackageID().String()}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authorization header required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "member not found",
				commandsError:  errs.ErrMemberNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Member not found",
			},
			{
				name:           "package not found",
				commandsError:  errs.ErrPackageNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Package not found",
			},
			{
				name:           "coupon not found",
				commandsError:  errs.ErrCouponNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coupon not found",
			},
			{
				name:           "package inactive",
				commandsError:  errs.ErrPackageInactive,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Package is not active",
			},
			{
				name:           "coupon expired",
				commandsError:  errs.ErrCouponExpired,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Coupon has expired",
			},
			{
				name:           "redemption limit reached",
				commandsError:  errs.ErrRedemptionLimitReached,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "redemption limit reached",
			},
			{
				name:           "per-member limit reached",
				commandsError:  errs.ErrPerMemberLimitReached,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "per-member limit reached",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), s.principal, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestApproveRedemption
// ================================================================================

func (s *RedemptionHandlerTestSuite) TestApproveRedemption() {
	redemptionID := uuid.New()
	url := "/redemptions/" + redemptionID.String() + "/approve"

	active := builder.NewRedemptionBuilder().
		WithID(redemptionID).
		WithStatus(redemption.StatusActive).
		BuildEntity()

	s.Run("success: returns 200 OK with active redemption", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), s.principal, redemptionID).
			Return(active, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.RedemptionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(redemptionID, response.ID)
		s.Equal(string(redemption.StatusActive), response.Status)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/redemptions/not-a-uuid/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid redemption ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "redemption not found",
				commandsError:  errs.ErrRedemptionNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Redemption not found",
			},
			{
				name:           "already approved",
				commandsError:  errs.ErrInvalidState,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not in a pending state",
			},
			{
				name:           "limit reached at approval",
				commandsError:  errs.ErrRedemptionLimitReached,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "redemption limit reached",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Approve(gomock.Any(), s.principal, redemptionID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCancelRedemption
// ================================================================================

func (s *RedemptionHandlerTestSuite) TestCancelRedemption() {
	redemptionID := uuid.New()
	url := "/redemptions/" + redemptionID.String() + "/cancel"

	cancelled := builder.NewRedemptionBuilder().
		WithID(redemptionID).
		WithStatus(redemption.StatusCancelled).
		BuildEntity()

	s.Run("success: returns 200 OK with cancelled redemption", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.principal, redemptionID).
			Return(cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.RedemptionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(string(redemption.StatusCancelled), response.Status)
	})

	s.Run("error: 409 Conflict when no longer pending", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.principal, redemptionID).
			Return(nil, errs.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not in a pending state")
	})
}

// ================================================================================
// TestGetRedemption
// ================================================================================

func (s *RedemptionHandlerTestSuite) TestGetRedemption() {
	redemptionID := uuid.New()
	url := "/redemptions/" + redemptionID.String()

	returnView := builder.NewRedemptionBuilder().WithID(redemptionID).BuildView()

	s.Run("success: returns 200 OK with RedemptionResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.principal.OrganizationID, redemptionID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.RedemptionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(redemptionID, response.ID)
		s.Equal(returnView.PackageCode, response.PackageCode)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/redemptions/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid redemption ID")
	})

	s.Run("error: 404 Not Found for missing redemption", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.principal.OrganizationID, redemptionID).
			Return(nil, infra.WrapRepoErr(infra.KindNotFound, "redemption not found", nil)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Redemption not found")
	})
}

// ================================================================================
// TestListMemberRedemptions
// ================================================================================

func (s *RedemptionHandlerTestSuite) TestListMemberRedemptions() {
	memberID := uuid.New()
	url := "/members/" + memberID.String() + "/redemptions"

	items := []*queries.RedemptionView{
		builder.NewRedemptionBuilder().WithMemberID(memberID).BuildView(),
		builder.NewRedemptionBuilder().WithMemberID(memberID).WithStatus(redemption.StatusActive).BuildView(),
	}

	s.Run("success: returns member redemption list", func() {
		s.mockQueries.EXPECT().ListByMember(gomock.Any(), s.principal.OrganizationID, memberID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.RedemptionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, len(items))
		s.Equal(memberID, response[0].MemberID)
	})

	s.Run("success: empty list for member with no redemptions", func() {
		s.mockQueries.EXPECT().ListByMember(gomock.Any(), s.principal.OrganizationID, memberID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.RedemptionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 400 Bad Request for invalid member UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/members/not-a-uuid/redemptions", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid member ID")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ListByMember(gomock.Any(), s.principal.OrganizationID, memberID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
