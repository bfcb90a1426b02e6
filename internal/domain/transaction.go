package domain

import "time"

// TransactionKind distingue ingresos de gastos.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

type Transaction struct {
	ID         string          `json:"id"`
	UserID     string          `json:"-"`
	Kind       TransactionKind `json:"kind"`
	Title      string          `json:"title"`
	Amount     int64           `json:"amount"`
	Category   string          `json:"category,omitempty"`
	Note       string          `json:"note,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Summary agrega totales de ingresos y gastos de un usuario.
type Summary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Balance      int64 `json:"balance"`
}
