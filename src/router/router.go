package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/harshulchawla1408/Astrousers-sub000/logger"
	"github.com/harshulchawla1408/Astrousers-sub000/src/config"
	"github.com/harshulchawla1408/Astrousers-sub000/src/controller"
	"github.com/harshulchawla1408/Astrousers-sub000/src/middleware"
	"github.com/harshulchawla1408/Astrousers-sub000/src/presence"
	"github.com/harshulchawla1408/Astrousers-sub000/src/service"
	"github.com/harshulchawla1408/Astrousers-sub000/src/ws"
)

// Deps carries the constructed collaborators the routes are wired onto.
type Deps struct {
	Coordinator *service.Coordinator
	Wallet      *service.WalletService
	Registry    *presence.Registry
	Hub         *ws.Hub
	Logger      *logrus.Logger
}

// NewRouter sets up the gin engine with all consult-service routes.
func NewRouter(cfg *config.GlobalConfig, deps Deps) *gin.Engine {
	router := gin.Default()

	log := deps.Logger
	if log == nil {
		log = logger.Logger
	}

	sessionController := controller.NewSessionController(deps.Coordinator, log)
	messageController := controller.NewMessageController(deps.Coordinator)
	walletController := controller.NewWalletController(deps.Wallet)
	presenceController := controller.NewPresenceController(deps.Registry)
	wsHandler := ws.NewHandler(deps.Hub, deps.Registry)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := router.Group("/", middleware.AuthRequired(cfg.JWTSecret))
	{
		authed.POST("/sessions", sessionController.Create)
		authed.GET("/sessions", sessionController.List)
		authed.GET("/sessions/:id", sessionController.Get)
		authed.POST("/sessions/:id/accept", sessionController.Accept)
		authed.POST("/sessions/:id/reject", sessionController.Reject)
		authed.POST("/sessions/:id/end", sessionController.End)

		authed.POST("/sessions/:id/messages", messageController.Send)
		authed.GET("/sessions/:id/messages", messageController.List)
		authed.POST("/sessions/:id/messages/read", messageController.MarkRead)

		authed.PUT("/presence/availability", presenceController.SetAvailability)
		authed.GET("/presence/advisors", presenceController.ListOnlineAdvisors)

		authed.GET("/wallet", walletController.Statement)

		authed.GET("/ws", wsHandler.Serve)
	}

	router.POST("/wallet/credit", middleware.GatewayAuthRequired(cfg.GatewayKey), walletController.Credit)

	return router
}
