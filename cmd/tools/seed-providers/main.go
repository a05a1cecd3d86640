// cmd/tools/seed-providers/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"sponsornest/internal/common/config"
	"sponsornest/internal/common/database"
	"sponsornest/internal/common/logger"
	"sponsornest/internal/models"
	"sponsornest/internal/store"
)

func main() {
	filePath := flag.String("file", "", "Path to a JSON file containing an array of providers")
	dryRun := flag.Bool("dry-run", false, "Parse and report without writing")
	flag.Parse()

	if *filePath == "" {
		fmt.Println("Error: -file is required.")
		flag.Usage()
		os.Exit(1)
	}

	providers, err := loadProviders(*filePath)
	if err != nil {
		fmt.Printf("Error loading providers: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d providers from %s\n", len(providers), *filePath)

	if *dryRun {
		return
	}

	log := logger.NewStructured("info", "console")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fmt.Printf("Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	documents := store.New(pg.DB, log, config.GetDuration(cfg.Matching.StoreTimeout))
	if err := documents.EnsureSchema(ctx); err != nil {
		fmt.Printf("Error preparing schema: %v\n", err)
		os.Exit(1)
	}

	seeded := 0
	for _, p := range providers {
		fields := map[string]any{
			"businessName":                  p.BusinessName,
			"businessType":                  p.BusinessType,
			"email":                         p.Email,
			"sponsorshipAmount":             p.SponsorshipAmount,
			"eventCount":                    p.EventCount,
			"selectedEventCriteria":         p.SelectedEventCriteria,
			"willingToSponsorOtherCriteria": p.WillingToSponsorOtherCriteria,
			"createdAt":                     store.ServerTimestamp,
		}
		id, err := documents.Append(ctx, "providers", fields)
		if err != nil {
			fmt.Printf("Error seeding provider %q: %v\n", p.BusinessName, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded provider %s (%s)\n", p.BusinessName, id)
		seeded++
	}

	fmt.Printf("Done: %d providers seeded.\n", seeded)
}

func loadProviders(path string) ([]models.Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var providers []models.Provider
	if err := json.Unmarshal(raw, &providers); err != nil {
		return nil, fmt.Errorf("invalid provider file: %w", err)
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("provider file is empty")
	}
	return providers, nil
}
