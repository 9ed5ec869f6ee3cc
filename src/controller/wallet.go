package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshulchawla1408/Astrousers-sub000/src/middleware"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
	"github.com/harshulchawla1408/Astrousers-sub000/src/service"
	"github.com/harshulchawla1408/Astrousers-sub000/src/utils"
)

type WalletController struct {
	Wallet *service.WalletService
}

func NewWalletController(wallet *service.WalletService) *WalletController {
	return &WalletController{Wallet: wallet}
}

// @Summary Land a verified wallet top-up
// @Description Called by the payment gateway after an external top-up is verified
// @Tags wallet
// @Accept json
// @Produce json
// @Param CreditRequest body schemas.CreditRequest true "Credit Request"
// @Success 200 {object} models.Transaction
// @Failure 401 {object} schemas.ErrorResponse
// @Router /wallet/credit [post]
func (wc *WalletController) Credit(ctx *gin.Context) {
	var req schemas.CreditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.SendError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error(), "/wallet/credit"))
		return
	}

	tx, err := wc.Wallet.Credit(ctx.Request.Context(), req.AccountID, req.Amount, req.Reason)
	if err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, "/wallet/credit"))
		return
	}

	ctx.JSON(http.StatusOK, tx)
}

// Statement returns the caller's balance and transaction history.
func (wc *WalletController) Statement(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)

	statement, err := wc.Wallet.Statement(ctx.Request.Context(), identityID)
	if err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, "/wallet"))
		return
	}

	ctx.JSON(http.StatusOK, statement)
}
