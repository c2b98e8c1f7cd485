// landscapectl is the ops companion to the API server: it runs schema
// migrations, installs the demo dataset and provisions accounts without
// going through HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pentlavallir/Landscaping-US/internal/app"
	"github.com/pentlavallir/Landscaping-US/internal/config"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/migrations"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/seeding"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "landscapectl",
		Short: "Landscaping service management ops tool",
	}

	rootCmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		createUserCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp loads config, connects and migrates. Every subcommand needs
// the schema in place before touching data.
func openApp() (*app.App, error) {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.AppName)

	application, err := app.NewApp(cfg)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(context.Background(), application.DB); err != nil {
		application.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return application, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply any pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the demo dataset into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			repos := seeding.Repos{
				Properties: repositories.NewPropertyRepository(application.DB),
				Users:      repositories.NewUserRepository(application.DB),
				Services:   repositories.NewPropertyServiceRepository(application.DB),
				Prices:     repositories.NewPriceMasterRepository(application.DB),
				Personnel:  repositories.NewServicePersonRepository(application.DB),
				Events:     repositories.NewServiceEventRepository(application.DB),
				Tickets:    repositories.NewTicketRepository(application.DB),
				Regions:    repositories.NewRegionRepository(application.DB),
			}
			return seeding.Run(context.Background(), repos)
		},
	}
}

func createUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Provision an admin or owner account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")
			fullName, _ := cmd.Flags().GetString("full-name")
			email, _ := cmd.Flags().GetString("email")
			property, _ := cmd.Flags().GetString("property")

			req := &dtos.CreateUserRequest{
				Username: username,
				Password: password,
				Role:     role,
				FullName: fullName,
				Email:    email,
			}
			if property != "" {
				id, err := uuid.Parse(property)
				if err != nil {
					return fmt.Errorf("invalid --property id: %w", err)
				}
				req.PropertyID = &id
			}

			application, err := openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			userRepo := repositories.NewUserRepository(application.DB)
			propRepo := repositories.NewPropertyRepository(application.DB)
			userService := services.NewUserService(userRepo, propRepo)

			user, err := userService.Create(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Printf("Created %s user %q (%s)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().String("username", "", "Login username")
	cmd.Flags().String("password", "", "Login password")
	cmd.Flags().String("role", "owner", "Account role: admin or owner")
	cmd.Flags().String("full-name", "", "Display name")
	cmd.Flags().String("email", "", "Notification email address")
	cmd.Flags().String("property", "", "Property id to link an owner account to")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
