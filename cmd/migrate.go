package cmd

import (
	"fmt"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := openDatabase(true); err != nil {
			return err
		}
		log.Info().Msg("Database schema is up to date")
		return nil
	},
}

var (
	generateOut        string
	generateReportOnly bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate typed query helpers and report unmapped columns",
	Long: `Migrates the schema, prints the columns in each table that no model field
maps to, and writes gorm/gen query helpers to --out.

	portfolio generate --out ./query
	portfolio generate --report-only
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDatabase(false)
		if err != nil {
			return err
		}

		if generateReportOnly {
			report, err := models.BuildColumnReport(db)
			if err != nil {
				return err
			}
			if _, err := report.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			if n := report.Total(); n > 0 {
				return fmt.Errorf("%d columns are not mapped by any model", n)
			}
			return nil
		}
		return models.GenerateModels(db, generateOut, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateOut, "out", "./query", "directory for the generated query package")
	generateCmd.Flags().BoolVar(&generateReportOnly, "report-only", false, "only print the column mismatch report")
}
