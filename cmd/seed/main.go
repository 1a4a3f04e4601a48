package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/ghodss/yaml"

	"github.com/qaztour/qaztour-api/internal/config"
	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/postgres"
	"github.com/qaztour/qaztour-api/internal/util"
)

// Dataset is the YAML shape of a seed file. Region and category names are
// free text and created on first use, matching how the admin form works.
type Dataset struct {
	Users []struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		IsStaff  bool   `json:"is_staff"`
		Bio      string `json:"bio"`
		Country  string `json:"country"`
	} `json:"users"`
	Attractions []struct {
		Name          string   `json:"name"`
		Region        string   `json:"region"`
		Category      string   `json:"category"`
		Description   string   `json:"description"`
		Image         string   `json:"image"`
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		Status        string   `json:"status"`
		EntranceFee   string   `json:"entrance_fee"`
		BestTime      string   `json:"best_time"`
		VisitorsCount int      `json:"visitors_count"`
	} `json:"attractions"`
	Routes []struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		DurationDays int    `json:"duration_days"`
		BudgetRange  string `json:"budget_range"`
		Difficulty   string `json:"difficulty"`
		DistanceKM   int    `json:"distance_km"`
		Image        string `json:"image"`
		Stops        []struct {
			DayNumber     int    `json:"day_number"`
			Title         string `json:"title"`
			Description   string `json:"description"`
			Image         string `json:"image"`
			DurationLabel string `json:"duration_label"`
		} `json:"stops"`
	} `json:"routes"`
}

func main() {
	file := flag.String("file", "seed/data.yaml", "path to the YAML dataset")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read dataset: %v", err)
	}
	var dataset Dataset
	if err := yaml.Unmarshal(raw, &dataset); err != nil {
		log.Fatalf("parse dataset: %v", err)
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	users := postgres.NewUserRepo(db)
	profiles := postgres.NewProfileRepo(db)
	regions := postgres.NewRegionRepo(db)
	categories := postgres.NewCategoryRepo(db)
	attractions := postgres.NewAttractionRepo(db)
	routes := postgres.NewRouteRepo(db)

	for _, u := range dataset.Users {
		if _, err := users.FindByUsername(ctx, u.Username); err == nil {
			log.Printf("user %s already exists, skipping", u.Username)
			continue
		}
		hash, salt, err := util.DerivePassword(u.Password)
		if err != nil {
			log.Fatalf("derive password for %s: %v", u.Username, err)
		}
		user, err := users.Create(ctx, &domain.User{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: hash,
			PasswordSalt: salt,
			IsStaff:      u.IsStaff,
		})
		if err != nil {
			log.Fatalf("create user %s: %v", u.Username, err)
		}
		profile, err := profiles.GetOrCreate(ctx, user.ID)
		if err != nil {
			log.Fatalf("create profile for %s: %v", u.Username, err)
		}
		profile.Bio = u.Bio
		profile.Country = u.Country
		if _, err := profiles.Update(ctx, profile); err != nil {
			log.Fatalf("update profile for %s: %v", u.Username, err)
		}
		log.Printf("created user %s", u.Username)
	}

	for _, a := range dataset.Attractions {
		region, err := regions.Create(ctx, a.Region)
		if err != nil {
			log.Fatalf("region %s: %v", a.Region, err)
		}
		category, err := categories.Create(ctx, a.Category)
		if err != nil {
			log.Fatalf("category %s: %v", a.Category, err)
		}
		status := domain.AttractionStatus(a.Status)
		if !status.Valid() {
			status = domain.AttractionStatusActive
		}
		created, err := attractions.Create(ctx, domain.AttractionFields{
			Name:        a.Name,
			RegionID:    region.ID,
			CategoryID:  category.ID,
			Description: a.Description,
			Image:       a.Image,
			Latitude:    a.Latitude,
			Longitude:   a.Longitude,
			Status:      status,
			EntranceFee: a.EntranceFee,
			BestTime:    a.BestTime,
		})
		if err != nil {
			log.Fatalf("create attraction %s: %v", a.Name, err)
		}
		if a.VisitorsCount > 0 {
			if _, err := db.ExecContext(ctx,
				`UPDATE attraction SET visitors_count = $1 WHERE id = $2`, a.VisitorsCount, created.ID); err != nil {
				log.Fatalf("set visitors for %s: %v", a.Name, err)
			}
		}
		log.Printf("created attraction %s", a.Name)
	}

	for _, r := range dataset.Routes {
		fields := domain.RouteFields{
			Title:        r.Title,
			Description:  r.Description,
			DurationDays: r.DurationDays,
			BudgetRange:  r.BudgetRange,
			Difficulty:   r.Difficulty,
			DistanceKM:   r.DistanceKM,
			Image:        r.Image,
		}
		for _, stop := range r.Stops {
			label := stop.DurationLabel
			if label == "" {
				label = "Full Day"
			}
			fields.Stops = append(fields.Stops, domain.RouteStopFields{
				DayNumber:     stop.DayNumber,
				Title:         stop.Title,
				Description:   stop.Description,
				Image:         stop.Image,
				DurationLabel: label,
			})
		}
		if _, err := routes.Create(ctx, fields); err != nil {
			log.Fatalf("create route %s: %v", r.Title, err)
		}
		log.Printf("created route %s", r.Title)
	}

	log.Println("seed complete")
}
