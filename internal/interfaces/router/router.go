package router

import (
	"context"

	authsvc "github.com/b2ygroup/conecta-pro/internal/application/auth"
	emailsvc "github.com/b2ygroup/conecta-pro/internal/application/emails"
	healthsvc "github.com/b2ygroup/conecta-pro/internal/application/health"
	lesvc "github.com/b2ygroup/conecta-pro/internal/application/listingevents"
	listsvc "github.com/b2ygroup/conecta-pro/internal/application/listings"
	msgsvc "github.com/b2ygroup/conecta-pro/internal/application/messaging"
	profilesvc "github.com/b2ygroup/conecta-pro/internal/application/profiles"
	savedsvc "github.com/b2ygroup/conecta-pro/internal/application/saved"
	"github.com/b2ygroup/conecta-pro/internal/application/search"
	uploadsvc "github.com/b2ygroup/conecta-pro/internal/application/uploads"
	"github.com/b2ygroup/conecta-pro/internal/config"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/cache"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/database"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/storage"
	authhandler "github.com/b2ygroup/conecta-pro/internal/interfaces/handlers/auth"
	healthhandler "github.com/b2ygroup/conecta-pro/internal/interfaces/handlers/health"
	listhandler "github.com/b2ygroup/conecta-pro/internal/interfaces/handlers/listings"
	mkthandler "github.com/b2ygroup/conecta-pro/internal/interfaces/handlers/marketplace"
	msghandler "github.com/b2ygroup/conecta-pro/internal/interfaces/handlers/messaging"
	profilehandler "github.com/b2ygroup/conecta-pro/internal/interfaces/handlers/profiles"
	savedhandler "github.com/b2ygroup/conecta-pro/internal/interfaces/handlers/saved"
	uploadhandler "github.com/b2ygroup/conecta-pro/internal/interfaces/handlers/uploads"
	"github.com/b2ygroup/conecta-pro/internal/middleware"
	"github.com/b2ygroup/conecta-pro/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) PingContext(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateApp wires every dependency and route. Redis and Postgres are both required.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	logger.Setup(cfg.LogLevel, cfg.Env)

	rdb, err := cache.Open(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}
	stats := &healthsvc.Stats{Rdb: rdb}

	app.Use(recover.New())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix:  cfg.FrontendURLEndsWith,
		AllowLocalhost: !cfg.IsProduction(),
		DevPassword:    cfg.DevPassword,
	}))
	app.Use(middleware.Session(sessionCfg, rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(stats))
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: db},
		Stats:          stats,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Post("/health/reset", hh.Reset)

	var emails emailsvc.Sender
	if cfg.BrevoAPIKey != "" {
		emails = &emailsvc.BrevoClient{APIKey: cfg.BrevoAPIKey, MailFrom: cfg.MailFrom}
	}

	// Public catalogue
	mh := &mkthandler.Handlers{Search: &search.Service{DB: db}}
	app.Get("/api/anuncios", mh.Anuncios)
	app.Get("/api/categorias", mh.Categorias)
	app.Post("/api/generate-description", mh.GenerateDescription)

	// Auth
	ah := &authhandler.Handlers{
		UserFinder: &authsvc.GormUserFinder{DB: db},
		Accounts:   &authsvc.Service{DB: db, Emails: emails},
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/signup", ah.Signup)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)
	authGroup.Delete("/sessions", ah.LogoutAll)

	// Profiles
	ph := &profilehandler.Handlers{Service: &profilesvc.Service{DB: db}}
	pg := app.Group("/api/v1/profiles", middleware.RequireAuth())
	pg.Get("/me", ph.Me)
	pg.Put("/me", ph.UpdateMe)

	// Listings
	lh := &listhandler.Handlers{Service: &listsvc.Service{DB: db}, Events: &lesvc.Service{DB: db}}
	lg := app.Group("/api/v1/listings")
	lg.Get("/mine", middleware.RequireAuth(), lh.MyListings)
	lg.Get("/:listing_id", lh.GetListing)
	lg.Post("/", middleware.RequireAuth(), lh.CreateListing)
	lg.Patch("/:listing_id", middleware.RequireAuth(), lh.UpdateListing)
	lg.Delete("/:listing_id", middleware.RequireAuth(), lh.DeleteListing)
	lg.Get("/:listing_id/events", middleware.RequireAuth(), lh.ListingEvents)

	// Saved listings
	sh := &savedhandler.Handlers{Service: &savedsvc.Service{DB: db}}
	sg := app.Group("/api/v1/saved", middleware.RequireAuth())
	sg.Get("/", sh.List)
	sg.Get("/:listing_id", sh.Status)
	sg.Put("/:listing_id", sh.Save)
	sg.Delete("/:listing_id", sh.Remove)

	// Conversations
	msh := &msghandler.Handlers{Service: &msgsvc.Service{
		DB:       db,
		Notifier: &msgsvc.RedisNotifier{Rdb: rdb},
		Emails:   emails,
	}}
	cg := app.Group("/api/v1/conversations", middleware.RequireAuth())
	cg.Post("/", msh.StartConversation)
	cg.Get("/", msh.Inbox)
	cg.Get("/:conversation_id/messages", msh.Messages)
	cg.Post("/:conversation_id/messages", msh.SendMessage)
	cg.Get("/:conversation_id/stream", msh.Stream)

	// Uploads
	upsvc := &uploadsvc.Service{}
	if cfg.S3.Enabled() {
		client, err := storage.NewClient(context.Background(), storage.S3Config{
			Region:     cfg.S3.Region,
			Bucket:     cfg.S3.Bucket,
			AccessKey:  cfg.S3.AccessKeyID,
			SecretKey:  cfg.S3.SecretAccessKey,
			Endpoint:   cfg.S3.Endpoint,
			PublicBase: cfg.S3.PublicBaseURL,
			PresignTTL: cfg.S3.UploadURLTTL,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		upsvc.Storage = client
	} else {
		log.Warn().Msg("S3 not configured: listing image uploads disabled")
	}
	uph := &uploadhandler.Handlers{Service: upsvc}
	app.Post("/api/v1/uploads/listing-image", middleware.RequireAuth(), uph.ListingImage)

	return app, db, rdb, nil
}
