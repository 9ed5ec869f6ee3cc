package models

import "time"

// TransactionType classifies a ledger transaction.
type TransactionType string

const (
	TxCredit TransactionType = "CREDIT"
	TxDebit  TransactionType = "DEBIT"
)

// Transaction is one immutable entry of an account's transaction history.
type Transaction struct {
	TxID         string          `json:"tx_id" db:"tx_id"`
	AccountID    string          `json:"account_id" db:"account_id"`
	Type         TransactionType `json:"type" db:"type"`
	Amount       int64           `json:"amount" db:"amount"`
	Reason       string          `json:"reason" db:"reason"`
	BalanceAfter int64           `json:"balance_after" db:"balance_after"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// LedgerAccount is a prepaid wallet balance in whole currency units.
// The balance is mutated only through the atomic debit/credit operations.
type LedgerAccount struct {
	AccountID string `json:"account_id" db:"account_id"`
	Balance   int64  `json:"balance" db:"balance"`
}
