package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fintrack/internal/domain"
	"fintrack/internal/service"
)

type mockTransactionRepo struct {
	mu     sync.Mutex
	byUser map[string][]domain.Transaction
}

func newMockTransactionRepo() *mockTransactionRepo {
	return &mockTransactionRepo{byUser: make(map[string][]domain.Transaction)}
}

func (m *mockTransactionRepo) Create(_ context.Context, tx domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUser[tx.UserID] = append(m.byUser[tx.UserID], tx)
	return nil
}

func (m *mockTransactionRepo) ListByUser(_ context.Context, userID string, _ int) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byUser[userID], nil
}

func (m *mockTransactionRepo) Summarize(_ context.Context, userID string) (domain.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s domain.Summary
	for _, tx := range m.byUser[userID] {
		if tx.Kind == domain.KindIncome {
			s.TotalIncome += tx.Amount
		} else {
			s.TotalExpense += tx.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s, nil
}

func setupTransactionRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	tokens := service.NewTokenService("test-secret", time.Hour)
	txSvc := service.NewTransactionService(logger, newMockTransactionRepo(), nil)
	h := NewTransactionHandler(logger, txSvc)

	r := gin.New()
	api := r.Group("/api/v1")
	protected := api.Group("")
	protected.Use(JWTAuthMiddleware(tokens))
	protected.POST("/transactions", h.Add)
	protected.GET("/transactions", h.List)
	protected.GET("/transactions/summary", h.Summary)

	token, err := tokens.Issue(uuid.NewString())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return r, token
}

func TestTransactionHandlerAdd_Success(t *testing.T) {
	r, token := setupTransactionRouter(t)

	rec := performRequest(r, http.MethodPost, "/api/v1/transactions", map[string]any{
		"kind":   "income",
		"title":  "salary",
		"amount": 250000,
	}, map[string]string{"Authorization": "Bearer " + token})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionHandlerAdd_InvalidKind(t *testing.T) {
	r, token := setupTransactionRouter(t)

	rec := performRequest(r, http.MethodPost, "/api/v1/transactions", map[string]any{
		"kind":   "transfer",
		"title":  "x",
		"amount": 100,
	}, map[string]string{"Authorization": "Bearer " + token})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTransactionHandlerAdd_RequiresToken(t *testing.T) {
	r, _ := setupTransactionRouter(t)

	rec := performRequest(r, http.MethodPost, "/api/v1/transactions", map[string]any{
		"kind":   "income",
		"title":  "salary",
		"amount": 100,
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestTransactionHandlerSummary(t *testing.T) {
	r, token := setupTransactionRouter(t)
	headers := map[string]string{"Authorization": "Bearer " + token}

	for _, body := range []map[string]any{
		{"kind": "income", "title": "salary", "amount": 5000},
		{"kind": "expense", "title": "groceries", "amount": 1250},
	} {
		rec := performRequest(r, http.MethodPost, "/api/v1/transactions", body, headers)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add: expected 201, got %d", rec.Code)
		}
	}

	rec := performRequest(r, http.MethodGet, "/api/v1/transactions/summary", nil, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var summary domain.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalIncome != 5000 || summary.TotalExpense != 1250 || summary.Balance != 3750 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestTransactionHandlerList(t *testing.T) {
	r, token := setupTransactionRouter(t)
	headers := map[string]string{"Authorization": "Bearer " + token}

	rec := performRequest(r, http.MethodGet, "/api/v1/transactions", nil, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Transactions) != 0 {
		t.Fatalf("expected empty list, got %d", len(resp.Transactions))
	}
}
