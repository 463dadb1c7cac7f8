package usecase

import (
	"context"

	"expense-reporter/internal/domain"
)

// TransactionRepository loads raw bank-export rows. The usecase layer
// depends on this interface, not on the CSV gateway directly.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TransactionRepository
type TransactionRepository interface {
	GetTransactions(ctx context.Context, path string) ([]domain.Transaction, error)
}
