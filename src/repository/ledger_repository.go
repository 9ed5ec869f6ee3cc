package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/harshulchawla1408/Astrousers-sub000/src/db"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// LedgerRepository owns wallet balances and their append-only transaction
// history in PostgreSQL. Balance mutations run in a transaction holding the
// account row lock, so concurrent debits and credits never compute from a
// stale read.
type LedgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(database *db.DB) *LedgerRepository {
	return &LedgerRepository{db: database.Sqlx()}
}

// Credit adds amount to the account, creating the account row on first use.
func (r *LedgerRepository) Credit(ctx context.Context, accountID string, amount int64, reason string) (*models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var balanceAfter int64
	query := `
		INSERT INTO wallet_accounts (account_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (account_id) DO UPDATE SET balance = wallet_accounts.balance + $2
		RETURNING balance
	`
	if err := tx.QueryRowxContext(ctx, query, accountID, amount).Scan(&balanceAfter); err != nil {
		return nil, fmt.Errorf("failed to credit account: %w", err)
	}

	record := &models.Transaction{
		TxID:         uuid.New().String(),
		AccountID:    accountID,
		Type:         models.TxCredit,
		Amount:       amount,
		Reason:       reason,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.appendTransaction(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit credit: %w", err)
	}
	return record, nil
}

// Debit subtracts up to amount from the account, clamped at zero, and returns
// the amount actually debited. A missing account debits nothing. When the
// context carries an open transaction (the session-end path), the debit joins
// it rather than drawing a second pooled connection.
func (r *LedgerRepository) Debit(ctx context.Context, accountID string, amount int64, reason string) (int64, error) {
	if tx, ok := db.TxFrom(ctx); ok {
		return r.debitTx(ctx, tx, accountID, amount, reason)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	debited, err := r.debitTx(ctx, tx, accountID, amount, reason)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit debit: %w", err)
	}
	return debited, nil
}

func (r *LedgerRepository) debitTx(ctx context.Context, tx *sqlx.Tx, accountID string, amount int64, reason string) (int64, error) {
	var balance int64
	err := tx.QueryRowxContext(ctx,
		`SELECT balance FROM wallet_accounts WHERE account_id = $1 FOR UPDATE`,
		accountID,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}

	debited := amount
	if debited > balance {
		debited = balance
	}
	if debited < 0 {
		debited = 0
	}
	balanceAfter := balance - debited

	if _, err := tx.ExecContext(ctx,
		`UPDATE wallet_accounts SET balance = $2 WHERE account_id = $1`,
		accountID, balanceAfter,
	); err != nil {
		return 0, fmt.Errorf("failed to debit account: %w", err)
	}

	record := &models.Transaction{
		TxID:         uuid.New().String(),
		AccountID:    accountID,
		Type:         models.TxDebit,
		Amount:       debited,
		Reason:       reason,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.appendTransaction(ctx, tx, record); err != nil {
		return 0, err
	}
	return debited, nil
}

// Balance returns the account balance; a missing account reads as zero.
func (r *LedgerRepository) Balance(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance,
		`SELECT balance FROM wallet_accounts WHERE account_id = $1`, accountID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance, nil
}

// Transactions returns the account history in append order.
func (r *LedgerRepository) Transactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	query := `
		SELECT tx_id, account_id, type, amount, reason, balance_after, created_at
		FROM wallet_transactions
		WHERE account_id = $1
		ORDER BY created_at ASC
	`
	var txs []models.Transaction
	if err := r.db.SelectContext(ctx, &txs, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (r *LedgerRepository) appendTransaction(ctx context.Context, tx *sqlx.Tx, record *models.Transaction) error {
	query := `
		INSERT INTO wallet_transactions (tx_id, account_id, type, amount, reason, balance_after, created_at)
		VALUES (:tx_id, :account_id, :type, :amount, :reason, :balance_after, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}
