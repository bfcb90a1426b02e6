package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"fintrack/internal/domain"
)

type mockTransactionRepo struct {
	mu         sync.Mutex
	byUser     map[string][]domain.Transaction
	summarizes int
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
	m.summarizes++
	var s domain.Summary
	for _, tx := range m.byUser[userID] {
		switch tx.Kind {
		case domain.KindIncome:
			s.TotalIncome += tx.Amount
		case domain.KindExpense:
			s.TotalExpense += tx.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s, nil
}

func TestTransactionServiceAdd_Validation(t *testing.T) {
	svc := NewTransactionService(zap.NewNop(), newMockTransactionRepo(), nil)

	cases := []AddTransactionInput{
		{Kind: "other", Title: "x", Amount: 100},
		{Kind: "income", Title: "", Amount: 100},
		{Kind: "income", Title: "x", Amount: 0},
		{Kind: "expense", Title: "x", Amount: -5},
	}
	for i, input := range cases {
		if _, err := svc.Add(context.Background(), "u1", input); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestTransactionServiceSummary(t *testing.T) {
	repo := newMockTransactionRepo()
	svc := NewTransactionService(zap.NewNop(), repo, nil)

	add := func(kind string, amount int64) {
		t.Helper()
		if _, err := svc.Add(context.Background(), "u1", AddTransactionInput{
			Kind:   kind,
			Title:  "t",
			Amount: amount,
		}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	add("income", 5000)
	add("income", 2500)
	add("expense", 1200)

	summary, err := svc.Summary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalIncome != 7500 || summary.TotalExpense != 1200 || summary.Balance != 6300 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestTransactionServiceSummary_CacheAndInvalidation(t *testing.T) {
	repo := newMockTransactionRepo()
	svc := NewTransactionService(zap.NewNop(), repo, NewMemorySummaryCache())

	if _, err := svc.Add(context.Background(), "u1", AddTransactionInput{Kind: "income", Title: "pay", Amount: 1000}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.Summary(context.Background(), "u1"); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if _, err := svc.Summary(context.Background(), "u1"); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if repo.summarizes != 1 {
		t.Fatalf("expected second summary to hit cache, got %d repo calls", repo.summarizes)
	}

	// escribir invalida el cache
	if _, err := svc.Add(context.Background(), "u1", AddTransactionInput{Kind: "expense", Title: "rent", Amount: 400}); err != nil {
		t.Fatalf("add: %v", err)
	}
	summary, err := svc.Summary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if repo.summarizes != 2 {
		t.Fatalf("expected cache invalidation after write, got %d repo calls", repo.summarizes)
	}
	if summary.Balance != 600 {
		t.Fatalf("unexpected balance: %d", summary.Balance)
	}
}

func TestMemorySummaryCache_Expiry(t *testing.T) {
	cache := NewMemorySummaryCache()
	cache.Set("u1", domain.Summary{Balance: 10}, -time.Second)

	if _, ok := cache.Get("u1"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}
