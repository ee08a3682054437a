package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the portfolio HTTP server",
	Long: `Starts the portfolio HTTP server. Usage:

	portfolio server
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

// buildServices wires the repositories, storage and outbound channels into
// the services the HTTP layer calls.
func buildServices(db database.Database, files services.AssetStore) (*services.IdentityService, api.Dependencies) {
	// Typed nils must not reach the interfaces; the services check for nil.
	var mailer services.Mailer
	if m := services.NewResendMailer(cfg); m != nil {
		mailer = m
	}
	var texter services.Texter
	if t := services.NewTwilioTexter(cfg); t != nil {
		texter = t
	}
	notifier := services.NewOwnerNotifier(cfg, db.UserRepo(), mailer, texter)

	identity := services.NewIdentityService(cfg, db.UserRepo(), db.SocialNetworkRepo(), db.CommentRepo(),
		db.LikeRepo(), db.ProjectRepo(), files, mailer)
	content := services.NewContentService(db.ProjectRepo(), db.AchievementRepo(), db.ExperienceRepo(),
		db.CategoryRepo(), db.TagRepo(), files)
	engagement := services.NewEngagementService(db.ProjectRepo(), db.CommentRepo(), db.LikeRepo(), notifier)
	site := services.NewSiteService(db.ProjectRepo(), db.AchievementRepo(), db.ExperienceRepo(),
		db.CategoryRepo(), db.TagRepo(), db.UserRepo(), db.CommentRepo(), db.AboutRepo(), files)

	return identity, api.Dependencies{
		Identity:   identity,
		Content:    content,
		Engagement: engagement,
		Site:       site,
		Users:      db.UserRepo(),
		Health:     db,
	}
}

func runServer(ctx context.Context) error {
	_, db, err := openDatabase(config.GetBool(cfg, "AUTO_MIGRATE", true))
	if err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	log.Info().Str("backend", store.Name()).Str("bucket", store.Bucket()).Msg("Upload storage ready")

	identity, deps := buildServices(db, services.NewFileStore(store))
	deps.Assets = store

	if _, err := identity.EnsureAdmin(ctx, services.AdminBootstrapFromConfig(cfg)); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	sessions, err := auth.NewSessions(
		config.GetString(cfg, "SESSION_SECRET", ""),
		time.Duration(config.GetInt(cfg, "SESSION_TTL_HOURS", 24))*time.Hour,
		time.Duration(config.GetInt(cfg, "REMEMBER_TTL_DAYS", 30))*24*time.Hour,
	)
	if err != nil {
		return err
	}
	deps.Sessions = sessions

	server, err := api.NewServer(cfg, deps)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	errChannel := make(chan error, 2)
	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
