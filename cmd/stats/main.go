package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"roamio/gazetteer/internal/config"
	"roamio/gazetteer/internal/constants"
)

// Stats is the per-collection row count snapshot printed by this tool
type Stats struct {
	Timestamp   time.Time        `json:"timestamp"`
	Collections map[string]int64 `json:"collections"`
	Total       int64            `json:"total"`
}

var collections = []string{
	constants.CollectionCountries,
	constants.CollectionRegions,
	constants.CollectionTimezones,
	constants.CollectionCurrencies,
	constants.CollectionLanguages,
	constants.CollectionAirports,
	constants.CollectionAirlines,
	constants.CollectionRoutes,
	constants.CollectionCrimeIndices,
	constants.CollectionCrimeTrends,
	constants.CollectionVisaRequirements,
	constants.CollectionTravelAdvisories,
	constants.CollectionDestinationProfiles,
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.DB.Type != config.DBTypePostgres {
		logger.Fatal("stats needs a postgres store", zap.String("db_type", string(cfg.DB.Type)))
	}

	db, err := sqlx.Connect("postgres", cfg.DB.DSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	stats := Stats{
		Timestamp:   time.Now().UTC(),
		Collections: make(map[string]int64, len(collections)),
	}
	for _, collection := range collections {
		table := strings.ReplaceAll(collection, "-", "_")
		var n int64
		// collection tables may not exist before the first seed run
		if err := db.Get(&n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
			logger.Warn("Failed to count collection",
				zap.String("collection", collection), zap.Error(err))
			continue
		}
		stats.Collections[collection] = n
		stats.Total += n
	}

	switch format := os.Getenv("OUTPUT_FORMAT"); format {
	case "", "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(stats); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(stats)
	default:
		logger.Fatal("Unknown output format", zap.String("format", format))
	}
}

func printHumanReadable(s Stats) {
	fmt.Println("=== Gazetteer Collections ===")
	fmt.Printf("Timestamp: %s\n\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	for _, collection := range collections {
		if n, ok := s.Collections[collection]; ok {
			fmt.Printf("%-24s %d\n", collection, n)
		}
	}
	fmt.Printf("\nTotal records: %d\n", s.Total)
}
