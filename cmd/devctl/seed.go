package main

import (
	"time"

	"go-devconnector-backend/internal/db"
	"go-devconnector-backend/internal/repository/postgres"
	"go-devconnector-backend/internal/seed"
	"go-devconnector-backend/internal/usecase"
	"go-devconnector-backend/pkg/auth"
	"go-devconnector-backend/pkg/database"
	"go-devconnector-backend/pkg/github"
	"go-devconnector-backend/pkg/logger"
	"go-devconnector-backend/pkg/validation"

	"github.com/spf13/cobra"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with fake developers, profiles and posts",
	Long: `Creates fake users through the same usecases the API uses. Usage:

	devctl seed --users 20 --posts 3
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		randSeed, _ := cmd.Flags().GetInt64("seed")
		migrateFirst, _ := cmd.Flags().GetBool("migrate")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if migrateFirst {
			if err := db.Up(cfg.DBUrl); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return err
		}
		defer pool.Close()

		validate := validation.New()
		userRepo := postgres.NewUserRepository(pool)
		authUC := usecase.NewAuthUsecase(userRepo, auth.NewPasswordHasher(cfg.BcryptCost), auth.NewTokenIssuer(cfg.JWTSecret, time.Hour), validate)
		profileUC := usecase.NewProfileUsecase(postgres.NewProfileRepository(pool), github.NewClient(github.Config{BaseURL: cfg.GithubAPIURL}, nil), validate, false)
		postUC := usecase.NewPostUsecase(postgres.NewPostRepository(pool), userRepo, validate)

		sum, err := seed.New(authUC, profileUC, postUC, randSeed).Run(ctx, seedOpts)
		if err != nil {
			return err
		}
		logger.Log.Info("Seed complete",
			"users", sum.Users,
			"profiles", sum.Profiles,
			"posts", sum.Posts,
			"likes", sum.Likes,
			"comments", sum.Comments,
			"password", seedOpts.Password,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedOpts.Users, "users", seedOpts.Users, "number of users to create")
	seedCmd.Flags().IntVar(&seedOpts.PostsPerUser, "posts", seedOpts.PostsPerUser, "posts per user")
	seedCmd.Flags().StringVar(&seedOpts.Password, "password", seedOpts.Password, "password for every seeded user")
	seedCmd.Flags().Int64("seed", time.Now().UnixNano(), "random seed")
	seedCmd.Flags().Bool("migrate", false, "apply migrations before seeding")
}
