package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
)

// WalletService exposes the ledger to the API surface: the payment-gateway
// credit landing point and balance/statement reads. Debits happen only
// through the coordinator's session-end path.
type WalletService struct {
	ledger LedgerStore
	audit  AuditFeed // optional
}

// NewWalletService creates a wallet service. audit may be nil.
func NewWalletService(ledger LedgerStore, audit AuditFeed) *WalletService {
	return &WalletService{ledger: ledger, audit: audit}
}

// Credit lands an externally verified top-up on the account.
func (w *WalletService) Credit(ctx context.Context, accountID string, amount int64, reason string) (*models.Transaction, error) {
	tx, err := w.ledger.Credit(ctx, accountID, amount, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to credit account: %w", err)
	}

	slog.Info("Credited wallet",
		"account_id", accountID,
		"amount", amount,
		"balance_after", tx.BalanceAfter)

	if w.audit != nil {
		w.audit.Emit("wallet.credit", tx)
	}
	return tx, nil
}

// Statement returns the account balance and transaction history.
func (w *WalletService) Statement(ctx context.Context, accountID string) (*schemas.WalletResponse, error) {
	balance, err := w.ledger.Balance(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}
	txs, err := w.ledger.Transactions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return &schemas.WalletResponse{
		AccountID:    accountID,
		Balance:      balance,
		Transactions: txs,
	}, nil
}
