package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fintrack/internal/domain"
	"fintrack/internal/service"
)

// TransactionHandler mantiene dependencias para endpoints de movimientos.
type TransactionHandler struct {
	logger *zap.Logger
	txServ *service.TransactionService
}

func NewTransactionHandler(logger *zap.Logger, txServ *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		logger: logger,
		txServ: txServ,
	}
}

// Add maneja POST /api/v1/transactions.
func (h *TransactionHandler) Add(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "access denied"})
		return
	}

	var req struct {
		Kind       string    `json:"kind" binding:"required"`
		Title      string    `json:"title" binding:"required"`
		Amount     int64     `json:"amount" binding:"required"`
		Category   string    `json:"category"`
		Note       string    `json:"note"`
		OccurredAt time.Time `json:"occurred_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	tx, err := h.txServ.Add(c.Request.Context(), userID, service.AddTransactionInput{
		Kind:       req.Kind,
		Title:      req.Title,
		Amount:     req.Amount,
		Category:   req.Category,
		Note:       req.Note,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.logger.Error("add transaction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// List maneja GET /api/v1/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "access denied"})
		return
	}

	txs, err := h.txServ.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list transactions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// Summary maneja GET /api/v1/transactions/summary.
func (h *TransactionHandler) Summary(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "access denied"})
		return
	}

	summary, err := h.txServ.Summary(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
