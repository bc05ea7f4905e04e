package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/SscSPs/finai_backend/internal/core/advisor"
	"github.com/SscSPs/finai_backend/internal/core/domain"
	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
	"github.com/SscSPs/finai_backend/internal/dto"
	"github.com/SscSPs/finai_backend/internal/handlers"
	"github.com/SscSPs/finai_backend/internal/platform/config"
	"github.com/SscSPs/finai_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	jwtSecret       string
	userID          string
	mockTxnService  *MockTransactionService
	mockUserService *MockUserService
	mockTokens      *MockTokenService
	mockGoogle      *MockGoogleOAuthService
	mockAdvisor     *MockAdvisorService
}

// generateTestToken creates a signed JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockTxnService = new(MockTransactionService)
	suite.mockUserService = new(MockUserService)
	suite.mockTokens = new(MockTokenService)
	suite.mockGoogle = new(MockGoogleOAuthService)
	suite.mockAdvisor = new(MockAdvisorService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:         suite.mockUserService,
		Transaction:  suite.mockTxnService,
		Advisor:      suite.mockAdvisor,
		TokenService: suite.mockTokens,
		GoogleOAuth:  suite.mockGoogle,
	})
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) do(method, path string, body io.Reader, authed bool) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, path, body)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func jsonBody(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func sampleTxn(id string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: id,
		Date:          domain.NewDate(2024, 3, 4),
		Amount:        decimal.RequireFromString("120.50"),
		Type:          domain.Expense,
		Category:      "Compras",
		Merchant:      "Loja X",
		Status:        domain.StatusCompleted,
	}
}

// --- Routing and auth ---
func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRoutesRequireToken() {
	w := suite.do(http.MethodGet, "/api/v1/transactions/month?month=2024-03", nil, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTxnService.AssertNotCalled(suite.T(), "GetMonthView", mock.Anything, mock.Anything, mock.Anything)
}

// --- Month view ---
func (suite *HandlerTestSuite) TestGetMonthView_Success() {
	source := sampleTxn("netflix")
	projected := *source
	projected.TransactionID = domain.ProjectedID("netflix", domain.Month{Year: 2024, Month: time.April})
	projected.IsProjected = true
	view := &domain.MonthView{
		Month:    domain.Month{Year: 2024, Month: time.April},
		IsFuture: true,
		Entries:  []domain.Entry{domain.ProjectedEntry{Transaction: projected, SourceID: "netflix", Month: domain.Month{Year: 2024, Month: time.April}}},
		Totals:   domain.Totals{Expense: projected.Amount, Balance: projected.Amount.Neg()},
	}
	suite.mockTxnService.On("GetMonthView", mock.Anything, suite.userID, domain.TransactionFilter{
		Month: "2024-04", Search: "net", Category: "all", Type: "all",
	}).Return(view, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/month?month=2024-04&search=net", nil, true)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.MonthViewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-04", resp.Month)
	suite.True(resp.IsFuture)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("proj-netflix-2024-04", resp.Transactions[0].ID)
	suite.Equal("netflix", resp.Transactions[0].SourceID)
	suite.True(resp.Transactions[0].IsProjected)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetMonthView_InvalidQuery() {
	for _, query := range []string{"", "?month=2024-4", "?month=2024-13", "?month=2024-03&type=transfer"} {
		w := suite.do(http.MethodGet, "/api/v1/transactions/month"+query, nil, true)
		suite.Equal(http.StatusBadRequest, w.Code, query)
	}
	suite.mockTxnService.AssertNotCalled(suite.T(), "GetMonthView", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestExportMonthCSV() {
	suite.mockTxnService.On("ExportMonthCSV", mock.Anything, suite.userID, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Month == "2024-03"
	}), mock.Anything).Return(nil, "Data,Estabelecimento\n").Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/export.csv?month=2024-03", nil, true)

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Contains(w.Header().Get("Content-Disposition"), "extrato-finai-2024-03.csv")
	suite.Equal("Data,Estabelecimento\n", w.Body.String())
}

// --- Transactions CRUD ---
func (suite *HandlerTestSuite) TestCreateTransaction() {
	body := map[string]any{
		"date": "2024-03-04", "amount": "120.50", "type": "expense",
		"category": "Compras", "merchant": "Loja X",
		"recurrence": map[string]any{"type": "installment", "currentInstallment": 1, "totalInstallments": 3},
	}
	suite.mockTxnService.On("CreateTransaction", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Merchant == "Loja X" && req.Recurrence != nil && req.Recurrence.TotalInstallments == 3
	})).Return(sampleTxn("t1"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", jsonBody(body), true)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"id":"t1"`)
}

func (suite *HandlerTestSuite) TestCreateTransaction_Invalid() {
	bodies := []map[string]any{
		{"date": "04/03/2024", "amount": "1", "type": "expense", "category": "A", "merchant": "B"},
		{"date": "2024-03-04", "amount": "1", "type": "transfer", "category": "A", "merchant": "B"},
		{"date": "2024-03-04", "amount": "1", "type": "expense", "category": "A"},
	}
	for _, body := range bodies {
		w := suite.do(http.MethodPost, "/api/v1/transactions", jsonBody(body), true)
		suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	}
	suite.mockTxnService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestUpdateProjectedTransaction_PreconditionFailed() {
	id := "proj-netflix-2024-04"
	suite.mockTxnService.On("UpdateTransaction", mock.Anything, suite.userID, id, mock.Anything).
		Return(nil, apperrors.ErrPreconditionFailed).Once()

	body := map[string]any{"date": "2024-04-04", "amount": "1", "type": "expense", "category": "A", "merchant": "B"}
	w := suite.do(http.MethodPut, "/api/v1/transactions/"+id, jsonBody(body), true)

	suite.Equal(http.StatusPreconditionFailed, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTransaction() {
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, "t1").Return(nil).Once()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, "missing").Return(apperrors.ErrNotFound).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/transactions/t1", nil, true).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/v1/transactions/missing", nil, true).Code)
}

func (suite *HandlerTestSuite) TestToggleStatus() {
	txn := sampleTxn("t1")
	txn.Status = domain.StatusPending
	suite.mockTxnService.On("ToggleTransactionStatus", mock.Anything, suite.userID, "t1").Return(txn, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/transactions/t1/status", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"pending"`)
}

func (suite *HandlerTestSuite) TestListTransactions_Defaults() {
	suite.mockTxnService.On("ListTransactions", mock.Anything, suite.userID, dto.ListTransactionsParams{Limit: 20}).
		Return(&dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions", nil, true)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/transactions?limit=500", nil, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestMaterializeProjection() {
	suite.mockTxnService.On("MaterializeProjection", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.MaterializeProjectionRequest) bool {
		return req.SourceID == "tv" && req.Month == "2024-05"
	})).Return(sampleTxn("new-id"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/projections/materialize", jsonBody(map[string]string{"sourceID": "tv", "month": "2024-05"}), true)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/transactions/projections/materialize", jsonBody(map[string]string{"sourceID": "tv", "month": "may"}), true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Overview ---
func (suite *HandlerTestSuite) TestListMonths() {
	opts := []domain.MonthOption{{Value: "2024-03", Label: "março de 2024"}, {Value: "2024-04", Label: "abril de 2024", IsFuture: true}}
	suite.mockTxnService.On("ListMonthOptions", mock.Anything, 2).Return(opts).Once()
	suite.mockTxnService.On("ListMonthOptions", mock.Anything, 12).Return(opts).Once()

	w := suite.do(http.MethodGet, "/api/v1/months?count=2", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"isFuture":true`)

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/months", nil, true).Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetDashboard() {
	suite.mockTxnService.On("GetDashboard", mock.Anything, suite.userID).Return(&domain.Dashboard{
		ExpensesByCategory: []domain.CategoryAmount{{Category: "Compras", Amount: decimal.NewFromInt(10)}},
		Recent:             []domain.Transaction{*sampleTxn("t1")},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"name":"Compras"`)
}

func (suite *HandlerTestSuite) TestListCategories() {
	w := suite.do(http.MethodGet, "/api/v1/categories", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Alimentação")
}

// --- Auth ---
func (suite *HandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: suite.userID, Name: "Ana", Email: "ana@example.com"}
	expires := time.Now().Add(time.Hour)
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "ana@example.com", "password123").Return(user, nil).Once()
	suite.mockTokens.On("GenerateAccessToken", mock.Anything, user).Return("access", expires, nil).Once()
	suite.mockTokens.On("GenerateRefreshToken", mock.Anything, user).Return("refresh", expires, nil).Once()
	suite.mockUserService.On("UpdateRefreshToken", mock.Anything, suite.userID, utils.HashRefreshToken("refresh"), expires).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", jsonBody(dto.LoginRequest{Email: "ana@example.com", Password: "password123"}), false)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access", resp.Token)
	suite.Equal("refresh", resp.RefreshToken)
	suite.Equal("ana@example.com", resp.User.Email)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "ana@example.com", "nope").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", jsonBody(dto.LoginRequest{Email: "ana@example.com", Password: "nope"}), false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokens.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrUnauthorized)

	var last int
	for i := 0; i < 6; i++ {
		last = suite.do(http.MethodPost, "/api/v1/auth/login", jsonBody(dto.LoginRequest{Email: "ana@example.com", Password: "x"}), false).Code
	}
	suite.Equal(http.StatusTooManyRequests, last)
}

func (suite *HandlerTestSuite) TestRegister_Duplicate() {
	suite.mockUserService.On("CreateUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", jsonBody(dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "password123"}), false)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestRefresh() {
	user := &domain.User{UserID: suite.userID}
	expires := time.Now().Add(time.Hour)
	suite.mockTokens.On("ValidateAndParseRefreshToken", mock.Anything, suite.userID, "good").Return(user, nil).Once()
	suite.mockTokens.On("ValidateAndParseRefreshToken", mock.Anything, suite.userID, "bad").Return(nil, apperrors.ErrUnauthorized).Once()
	suite.mockTokens.On("GenerateAccessToken", mock.Anything, user).Return("access-2", expires, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/refresh", jsonBody(dto.RefreshTokenRequest{UserID: suite.userID, RefreshToken: "good"}), false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "access-2")

	w = suite.do(http.MethodPost, "/api/v1/auth/refresh", jsonBody(dto.RefreshTokenRequest{UserID: suite.userID, RefreshToken: "bad"}), false)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestGoogleLogin_NotConfigured() {
	suite.mockGoogle.On("ValidateGoogleIDToken", mock.Anything, "cred").Return(nil, apperrors.ErrUnavailable).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/google", jsonBody(dto.GoogleLoginRequest{Credential: "cred"}), false)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

// --- Users ---
func (suite *HandlerTestSuite) TestGetMe() {
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Name: "Ana Souza", Email: "ana@example.com"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users/me", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "ui-avatars.com")
}

// --- Advisor ---
func (suite *HandlerTestSuite) TestAsk_Unavailable() {
	suite.mockAdvisor.On("Ask", mock.Anything, suite.userID, "Quanto gastei?").Return("", apperrors.ErrUnavailable).Once()

	w := suite.do(http.MethodPost, "/api/v1/advisor/ask", jsonBody(dto.AskAdvisorRequest{Question: "Quanto gastei?"}), true)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestAsk_Success() {
	suite.mockAdvisor.On("Ask", mock.Anything, suite.userID, "Dicas?").Return("**Economize**", nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/advisor/ask", jsonBody(dto.AskAdvisorRequest{Question: "Dicas?"}), true)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "**Economize**")
}

func (suite *HandlerTestSuite) TestScanReceipt() {
	image := []byte("\x89PNG\r\n\x1a\nfake")
	suite.mockAdvisor.On("ScanReceipt", mock.Anything, image, "image/png").
		Return(&advisor.Receipt{Merchant: "Padaria", Date: "2024-03-09", Amount: decimal.RequireFromString("12.5"), Category: "Alimentação"}, nil).Once()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="recibo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	suite.Require().NoError(err)
	_, _ = part.Write(image)
	suite.Require().NoError(mw.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/advisor/receipt", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.True(strings.Contains(w.Body.String(), `"merchant":"Padaria"`))
	suite.Contains(w.Body.String(), `"amount":"12.5"`)
}
