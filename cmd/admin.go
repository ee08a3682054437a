package cmd

import (
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the administrator from ADMIN_* settings when none exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase(true)
		if err != nil {
			return err
		}

		// Bootstrapping needs neither uploads nor email.
		identity := services.NewIdentityService(cfg, db.UserRepo(), db.SocialNetworkRepo(), db.CommentRepo(),
			db.LikeRepo(), db.ProjectRepo(), nil, nil)
		changed, err := identity.EnsureAdmin(cmd.Context(), services.AdminBootstrapFromConfig(cfg))
		if err != nil {
			return err
		}
		if !changed {
			log.Info().Msg("An administrator already exists, nothing to do")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bootstrapAdminCmd)
}
