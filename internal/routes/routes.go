package routes

import (
	"github.com/gin-gonic/gin"

	"indicamais/internal/authz"
	"indicamais/internal/handlers"
	"indicamais/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	resolver middleware.UserResolver,
	authHandler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	leadHandler *handlers.LeadHandler,
	financeHandler *handlers.FinanceHandler,
	userHandler *handlers.UserHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.GET("/login/discord", oauthHandler.Redirect)
	r.GET("/login/discord/callback", oauthHandler.Callback)
	r.POST("/indicacoes", leadHandler.Create) // formulário público de indicação
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ---- protected
	r.Use(middleware.AuthMiddleware(resolver))

	r.POST("/logout", authHandler.Logout)
	r.GET("/status-options", leadHandler.StatusOptions)

	// LEADS (fluxo operacional)
	leads := r.Group("/indicacoes")
	{
		leads.GET("/", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.POST("/:id/status", leadHandler.UpdateStatus)
	}

	// FINANCEIRO
	financeiro := r.Group("/financeiro",
		middleware.RequireRoles(authz.RoleFinanceiro, authz.RoleAdmin),
	)
	{
		financeiro.GET("/aguardando", financeHandler.ListAwaiting)
		financeiro.GET("/pagos", financeHandler.ListPaid)
		financeiro.POST("/status", financeHandler.UpdateStatus)
		financeiro.GET("/comprovante/:id", financeHandler.GetReceipt)
	}

	// USERS
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
		users.GET("/", middleware.RequireRoles(authz.RoleAdmin), userHandler.List)
	}

	// REPORTS
	reports := r.Group("/reports",
		middleware.RequireRoles(authz.RoleFinanceiro, authz.RoleAdmin),
	)
	{
		reports.GET("/settlement/summary", reportHandler.Summary)
		reports.GET("/settlement/pdf", reportHandler.SettlementPDF)
	}

	return r
}
