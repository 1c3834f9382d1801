package router

import (
	"log"

	"zenith/config"
	"zenith/controllers"
	"zenith/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
// Public routes + authenticated routes (Bearer token).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)
	api.POST("/refresh", Logger(), controllers.Refresh)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	auth.GET("/me", Logger(), controllers.Me)

	// Surveys (onboarding per section)
	auth.GET("/survey/:section", Logger(), controllers.GetSurvey)
	auth.PUT("/survey/:section", Logger(), controllers.SaveSurvey)

	// Balance
	auth.GET("/balance", Logger(), controllers.GetBalance)
	auth.PUT("/balance", Logger(), controllers.SetBalance)

	// Purchase evaluation + ledger
	auth.POST("/purchases/evaluate", Logger(), controllers.EvaluatePurchase)
	auth.POST("/purchases/:id/execute", Logger(), controllers.ExecutePurchase)
	auth.GET("/purchases", Logger(), controllers.GetPurchases)

	// AI (brief, chat, reset)
	auth.GET("/ai/brief/:section", Logger(), controllers.GetBrief)
	auth.POST("/ai/chat/:section", Logger(), controllers.Chat)
	auth.POST("/ai/reset/:section", Logger(), controllers.ResetAI)

	// Stress pulses + heatmap
	auth.POST("/stress", Logger(), controllers.LogStressPulse)
	auth.GET("/stress/heatmap", Logger(), controllers.GetStressHeatmap)

	// Dashboard
	auth.GET("/dashboard/spending-per-day", Logger(), controllers.GetSpendingPerDay)

	log.Printf("Routes initialized")
}
