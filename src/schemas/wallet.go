package schemas

import "github.com/harshulchawla1408/Astrousers-sub000/src/models"

// CreditRequest is the landing point payload for a verified external top-up.
type CreditRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	Reason    string `json:"reason" binding:"required"`
}

// WalletResponse reports a balance and its transaction history.
type WalletResponse struct {
	AccountID    string               `json:"account_id"`
	Balance      int64                `json:"balance"`
	Transactions []models.Transaction `json:"transactions"`
}
