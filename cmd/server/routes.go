package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"artist-membership.backend/internal/interfaces/http/handlers"
	"artist-membership.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	memberHandler      *handlers.MemberHandler
	paymentHandler     *handlers.PaymentHandler
	webhookHandler     *handlers.WebhookHandler
	idempotencyEnabled bool
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		members := api.Group("/members")
		{
			if d.idempotencyEnabled {
				members.POST("", middleware.IdempotencyMiddleware(), d.memberHandler.Register)
			} else {
				members.POST("", d.memberHandler.Register)
			}
			members.GET("", d.memberHandler.ListMembers)
			members.GET("/:id", d.memberHandler.GetMember)
			members.PUT("/:id/address", d.memberHandler.UpdateAddress)
			members.GET("/:id/card", d.memberHandler.GetCard)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/verify", d.paymentHandler.VerifyPayment)
		}

		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/razorpay", d.webhookHandler.HandleRazorpayWebhook)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, Idempotency-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
