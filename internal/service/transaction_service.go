package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

const (
	defaultListLimit = 100
	summaryCacheTTL  = 5 * time.Minute
)

// TransactionService coordina el registro y consulta de movimientos.
type TransactionService struct {
	logger *zap.Logger
	repo   repository.TransactionRepository
	cache  SummaryCache
}

func NewTransactionService(logger *zap.Logger, repo repository.TransactionRepository, cache SummaryCache) *TransactionService {
	if cache == nil {
		cache = NewMemorySummaryCache()
	}
	return &TransactionService{
		logger: logger,
		repo:   repo,
		cache:  cache,
	}
}

type AddTransactionInput struct {
	Kind       string
	Title      string
	Amount     int64
	Category   string
	Note       string
	OccurredAt time.Time
}

// Add valida y persiste un movimiento e invalida el resumen cacheado.
func (s *TransactionService) Add(ctx context.Context, userID string, input AddTransactionInput) (domain.Transaction, error) {
	kind := domain.TransactionKind(strings.ToLower(strings.TrimSpace(input.Kind)))
	if kind != domain.KindIncome && kind != domain.KindExpense {
		return domain.Transaction{}, fmt.Errorf("%w: kind must be income or expense", ErrValidation)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Transaction{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.Amount <= 0 {
		return domain.Transaction{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	tx := domain.Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		Kind:       kind,
		Title:      title,
		Amount:     input.Amount,
		Category:   strings.TrimSpace(input.Category),
		Note:       strings.TrimSpace(input.Note),
		OccurredAt: occurredAt,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	s.cache.Invalidate(userID)

	s.logger.Info("transaction recorded",
		zap.String("user_id", userID),
		zap.String("kind", string(kind)),
	)
	return tx, nil
}

// List devuelve los movimientos del usuario, más recientes primero.
func (s *TransactionService) List(ctx context.Context, userID string) ([]domain.Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id required")
	}
	return s.repo.ListByUser(ctx, userID, defaultListLimit)
}

// Summary devuelve los totales del usuario, con cache de lectura.
func (s *TransactionService) Summary(ctx context.Context, userID string) (domain.Summary, error) {
	if summary, ok := s.cache.Get(userID); ok {
		return summary, nil
	}
	summary, err := s.repo.Summarize(ctx, userID)
	if err != nil {
		return domain.Summary{}, err
	}
	s.cache.Set(userID, summary, summaryCacheTTL)
	return summary, nil
}
