package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"golang.org/x/oauth2"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "indicamais/docs"
	"indicamais/internal/config"
	"indicamais/internal/handlers"
	"indicamais/internal/middleware"
	"indicamais/internal/pdf"
	"indicamais/internal/repositories"
	"indicamais/internal/routes"
	"indicamais/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	middleware.SetJWTKey(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Erro ao conectar no banco: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Erro ao fechar o banco: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("Banco indisponível: ", err)
	}

	runMigrations(cfg.Database.DSN)

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)

	// sessões expiradas: uma varredura no boot e depois a cada 12h; o
	// ResolveSession já descarta sob demanda, isto só poda o acúmulo
	go func() {
		for {
			if err := sessionRepo.DeleteExpired(); err != nil {
				log.Printf("[auth][sessions] limpeza falhou: %v", err)
			}
			time.Sleep(12 * time.Hour)
		}
	}()

	// === Services ===
	authService := services.NewAuthService(sessionRepo, userRepo, cfg.Auth.SessionTTLDays)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	notifyService, err := services.NewNotifyService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		// notificação é acessória; sobe sem ela
		log.Printf("Telegram desabilitado: %v", err)
		notifyService = nil
	}

	userService := services.NewUserService(userRepo, emailService)
	leadService := services.NewLeadService(leadRepo, userRepo)
	settlementService := services.NewSettlementService(leadRepo, userRepo, emailService, notifyService)

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		RedirectURL:  cfg.Discord.RedirectURL,
		Scopes:       []string{"identify", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.Discord.AuthURL,
			TokenURL: cfg.Discord.TokenURL,
		},
	}
	identityService := services.NewIdentityService(userService, authService, oauthConfig, cfg.Discord.ProfileURL)

	reportGen := pdf.NewReportGenerator(cfg.Files.RootDir, cfg.Files.FontPath)
	reportService := services.NewReportService(leadRepo, reportGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	oauthHandler := handlers.NewOAuthHandler(identityService)
	leadHandler := handlers.NewLeadHandler(leadService)
	financeHandler := handlers.NewFinanceHandler(settlementService, leadService, receiptRepo)
	userHandler := handlers.NewUserHandler(userService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authService,
		authHandler,
		oauthHandler,
		leadHandler,
		financeHandler,
		userHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Servidor ouvindo em %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Erro ao subir o servidor: ", err)
	}
}

func runMigrations(dsn string) {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatal("Erro ao preparar migrations: ", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("Erro ao aplicar migrations: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
