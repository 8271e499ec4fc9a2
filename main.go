package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"protocol-wars-engine/handlers"
	"protocol-wars-engine/middleware"
	"protocol-wars-engine/models"
	"protocol-wars-engine/services"
	"protocol-wars-engine/utils"
	"protocol-wars-engine/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "protocol-wars-engine",
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-Player-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.PlayerProfile{},
		&models.Streak{},
		&models.Mission{},
		&models.Protocol{},
		&models.BattleRecord{},
		&models.PlayerCooldown{},
		&models.Notification{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	archive, err := utils.NewReportArchive()
	if err != nil {
		log.Fatal("failed to initialize report archive:", err)
	}

	rng := services.NewRNG(utils.NewSeed())

	streakService := services.NewStreakService(db)
	traitService := services.NewTraitService(db, streakService)
	missionService := services.NewMissionService(db, traitService, streakService, rng)
	battleService := services.NewBattleService(db, streakService, rng, archive)
	actionService := services.NewActionService(db, rng)
	abilityService := services.NewAbilityService(db)
	notificationService := services.NewNotificationService(db)
	protocolService := services.NewProtocolService(db)

	if err := protocolService.SeedIfEmpty(); err != nil {
		log.Fatal("failed to seed protocols:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional TVL feed keeps the protocol grid's numbers fresh.
	tvlSyncClient := workers.NewTVLSyncClient(db)
	go workers.PollProtocolTVL(ctx, tvlSyncClient, 60*time.Second)

	scheduler := services.NewEngineScheduler(missionService, abilityService, actionService)
	scheduler.Start()
	defer scheduler.Stop()

	// ✅ Setup routes — enforced Gateway auth + consistent /s/ prefix
	handlers.SetupPlayerRoutes(app, traitService, streakService)
	handlers.SetupMissionRoutes(app, missionService)
	handlers.SetupBattleRoutes(app, battleService, protocolService)
	handlers.SetupActionRoutes(app, actionService, abilityService, notificationService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
