package api

import (
	"net/http"

	adminHandler "gogive-web/internal/admin/handler"
	authHandler "gogive-web/internal/auth/handler"
	dashboardHandler "gogive-web/internal/dashboard/handler"
	"gogive-web/internal/push"
	"gogive-web/internal/session"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	sessions         *session.Manager
	authHandler      authHandler.Handler
	dashboardHandler dashboardHandler.Handler
	adminHandler     adminHandler.Handler
	streamer         *push.Streamer
}

func New(router *gin.RouterGroup, sessions *session.Manager, authHandler authHandler.Handler,
	dashboardHandler dashboardHandler.Handler, adminHandler adminHandler.Handler,
	streamer *push.Streamer) API {
	return API{
		router:           router,
		sessions:         sessions,
		authHandler:      authHandler,
		dashboardHandler: dashboardHandler,
		adminHandler:     adminHandler,
		streamer:         streamer,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api/gogiver")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/otp", a.authHandler.HandleRequestOTP)
		authGroup.POST("/verify", a.authHandler.HandleVerifyOTP)
	}
	protectedGroup := apiGroup.Group("", a.sessions.Middleware())
	{
		protectedGroup.POST("/auth/logout", a.authHandler.HandleLogout)

		protectedGroup.GET("/dashboard", a.dashboardHandler.HandleGetDashboard)
		protectedGroup.POST("/dashboard/refresh", a.dashboardHandler.HandleRefresh)
		protectedGroup.GET("/products", a.dashboardHandler.HandleGetProducts)
		protectedGroup.GET("/wallet", a.dashboardHandler.HandleGetWallet)
		protectedGroup.POST("/refer", a.dashboardHandler.HandleSubmitReferral)

		protectedGroup.GET("/stream", a.streamer.HandleStream)

		adminGroup := protectedGroup.Group("/admin")
		adminGroup.GET("/stats", a.adminHandler.HandleGetStats)
		adminGroup.GET("/givers", a.adminHandler.HandleListGivers)
		adminGroup.POST("/givers/:giverID/action", a.adminHandler.HandleGiverAction)
		adminGroup.GET("/feed", a.adminHandler.HandleGetFeed)
		adminGroup.GET("/withdrawals", a.adminHandler.HandleListWithdrawals)
		adminGroup.POST("/withdrawals/:withdrawalID/approve", a.adminHandler.HandleApproveWithdrawal)
		adminGroup.POST("/withdrawals/:withdrawalID/reject", a.adminHandler.HandleRejectWithdrawal)
		adminGroup.GET("/products", a.adminHandler.HandleListProducts)
		adminGroup.POST("/products", a.adminHandler.HandleCreateProduct)
		adminGroup.PUT("/products/:productID", a.adminHandler.HandleUpdateProduct)
		adminGroup.DELETE("/products/:productID", a.adminHandler.HandleDeleteProduct)
		adminGroup.GET("/products/:productID/bots", a.adminHandler.HandleListProductBots)
		adminGroup.POST("/products/:productID/bots", a.adminHandler.HandleAttachBot)
		adminGroup.DELETE("/products/:productID/bots/:botID", a.adminHandler.HandleDetachBot)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
