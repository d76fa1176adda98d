package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"content-manager/core/config"
	"content-manager/core/database"
	"content-manager/core/loader"
	"content-manager/core/logger"
	"content-manager/core/middleware/auth"
	"content-manager/core/middleware/rayid"
	"content-manager/core/storage"

	"content-manager/feature/admin"
	"content-manager/feature/content"
	"content-manager/feature/importer"
	"content-manager/feature/media"
	"content-manager/feature/taxonomy"

	contentmodels "content-manager/feature/content/models"
	taxonomymodels "content-manager/feature/taxonomy/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "content-manager/docs/swagger"
)

// @title Content Manager API
// @version 1.0
// @description API for managing quiz and puzzle content.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the content manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Required)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(
			&taxonomymodels.Feature{},
			&taxonomymodels.Category{},
			&taxonomymodels.Topic{},
			&taxonomymodels.Subtopic{},
			&contentmodels.Question{},
			&contentmodels.Puzzle{},
		); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}
		logg.Info("Connected to content database")

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage (Optional, media uploads only)
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Storage client unavailable, media uploads disabled", zap.Error(err))
			store = nil
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(taxonomy.NewFeature(db, logg))
		mgr.Register(content.NewFeature(db, logg))
		mgr.Register(importer.NewFeature(db, logg, cfg.Importer))
		mgr.Register(admin.NewFeature(db, logg))
		mgr.Register(media.NewFeature(store, cfg.Storage.Bucket, cfg.Storage.PublicURL, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
