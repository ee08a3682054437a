// Package cmd is the command line entry point of the portfolio backend.
package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// cfg is loaded once per invocation before any subcommand runs.
var cfg map[string]string

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Backend for the personal portfolio site",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal outside local development.
		envErr := godotenv.Load()

		cfg = config.New()
		setupLogger(cfg)
		if envErr != nil {
			log.Debug().Err(envErr).Msg("No .env file loaded")
		}

		return config.LoadSSM(cmd.Context(), cfg)
	},
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// setupLogger applies LOG_LEVEL and LOG_FORMAT to the global zerolog logger.
func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(config.GetString(c, "LOG_FORMAT", "json"), "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// openDatabase connects and, when migrate is set, brings the schema up to date.
func openDatabase(migrate bool) (*gorm.DB, database.Database, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, database.Database{}, err
	}
	if migrate {
		if err := models.Migrate(db); err != nil {
			return nil, database.Database{}, err
		}
	}
	return db, database.New(db), nil
}
