package main

import (
	"io"
	"log"
	"os"

	"github.com/qaztour/qaztour-api/internal/ai"
	"github.com/qaztour/qaztour-api/internal/config"
	"github.com/qaztour/qaztour-api/internal/logging"
	"github.com/qaztour/qaztour-api/internal/media"
	miniorepo "github.com/qaztour/qaztour-api/internal/repository/minio"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
	"github.com/qaztour/qaztour-api/internal/repository/postgres"
	"github.com/qaztour/qaztour-api/internal/service"
	transport "github.com/qaztour/qaztour-api/internal/transport/http"
	"github.com/qaztour/qaztour-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	users := postgres.NewUserRepo(db)
	profiles := postgres.NewProfileRepo(db)
	favorites := postgres.NewFavoriteRepo(db)
	regions := postgres.NewRegionRepo(db)
	categories := postgres.NewCategoryRepo(db)
	attractions := postgres.NewAttractionRepo(db)
	routes := postgres.NewRouteRepo(db)
	reviews := postgres.NewReviewRepo(db)
	bookings := postgres.NewBookingRepo(db)

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect minio: %v", err)
		}
		storage = miniorepo.NewStorage(client, cfg.MinIOPublicURL, cfg.MinIOUseSSL)
	} else {
		log.Println("minio not configured, avatar uploads disabled")
	}

	var chat ai.ChatClient
	if cfg.OpenAIAPIKey != "" {
		chat = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Println("openai not configured, planner serves catalog answers only")
	}

	tokens := util.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	processor := media.NewImageProcessor(cfg.AvatarMaxDimension)

	authService := service.NewAuthService(users, profiles, tokens)
	attractionService := service.NewAttractionService(attractions, favorites, regions, categories)
	routeService := service.NewRouteService(routes)
	reviewService := service.NewReviewService(reviews, attractions)
	bookingService := service.NewBookingService(bookings, routes,
		&service.DelayedProcessor{Delay: cfg.PaymentDelay}, cfg.PricePerPerson)
	profileService := service.NewProfileService(profiles, favorites, attractions, bookings,
		processor, storage, cfg.MinIOBucketAvatars, cfg.AvatarMaxBytes, cfg.AvatarMaxDimension)
	statsService := service.NewStatsService(users, attractions, reviews)
	plannerService := service.NewPlannerService(chat, attractions, routes)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterAuth(e, authService)
	transport.RegisterAttractions(e, authService, attractionService)
	transport.RegisterRoutes(e, authService, routeService)
	transport.RegisterReviews(e, authService, reviewService)
	transport.RegisterBookings(e, authService, bookingService)
	transport.RegisterProfiles(e, authService, profileService)
	transport.RegisterTaxonomy(e, regions, categories)
	transport.RegisterStats(e, authService, statsService)
	transport.RegisterPlanner(e, plannerService)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
