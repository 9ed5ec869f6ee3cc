package utils

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
)

// SendError writes an RFC 7807 error response and logs it.
func SendError(ctx *gin.Context, errResp *schemas.ErrorResponse) {
	ctx.JSON(errResp.Status, errResp)
	slog.Warn("Request failed",
		"status", errResp.Status,
		"title", errResp.Title,
		"detail", errResp.Detail,
		"instance", errResp.Instance)
}
