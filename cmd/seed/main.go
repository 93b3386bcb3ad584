// Command seed loads the JSON fixture snapshots into a live postgres
// database, giving a fresh environment the same data the fixture mode
// serves. Existing rows with matching ids are left untouched.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/FMG-lab/surya-painting/internal/config"
	"github.com/FMG-lab/surya-painting/internal/infra"
	"github.com/FMG-lab/surya-painting/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required to seed")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	seed[model.Branch](db, cfg.FixturesDir, "branches.json")
	seed[model.Booking](db, cfg.FixturesDir, "bookings.json")
	seed[model.Payment](db, cfg.FixturesDir, "payments.json")
	seed[model.StaffMember](db, cfg.FixturesDir, "staff.json")
	seed[model.Task](db, cfg.FixturesDir, "tasks.json")

	log.Info().Msg("seed complete")
}

func seed[T any](db *gorm.DB, dir, name string) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		log.Warn().Str("fixture", name).Err(err).Msg("skipping fixture")
		return
	}
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		log.Fatal().Str("fixture", name).Err(err).Msg("fixture unreadable")
	}
	if len(rows) == 0 {
		return
	}
	// Associations (payment → booking) are seeded from their own files.
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&rows).Error; err != nil {
		log.Fatal().Str("fixture", name).Err(err).Msg("insert failed")
	}
	log.Info().Str("fixture", name).Int("rows", len(rows)).Msg("seeded")
}
