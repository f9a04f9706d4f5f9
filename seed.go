package main

import (
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/database"
	"github.com/holocron-api/models"
	"github.com/holocron-api/utils"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample catalog and the admin account",
		Long: `Insert sample characters, planets and vehicles unless the catalog already has
data. When ADMIN_EMAIL is set, that account is created if missing and granted
the admin role; without ADMIN_PASSWORD a random password is generated and printed.`,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	result, err := database.SeedCatalog(ctx, a.conn.DB)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "seed catalog").Wrap(err)
	}
	if result.Skipped {
		cmd.Println("Catalog already seeded, skipping")
	} else {
		cmd.Printf("Seeded %d characters, %d planets, %d vehicles\n", result.Characters, result.Planets, result.Vehicles)
	}

	if a.cfg.AdminEmail == "" {
		return nil
	}

	password := a.cfg.AdminPassword
	generated := password == ""
	if generated {
		if password, err = utils.GenerateSecurePassword(16); err != nil {
			return oops.Code("SEED_FAILED").With("operation", "generate admin password").Wrap(err)
		}
	}

	credentials := a.credentials()
	admin, err := credentials.Register(ctx, a.cfg.AdminEmail, password)
	switch {
	case err == nil && generated:
		cmd.Printf("Generated admin password: %s\n", password)
	case apperrors.Is(err, apperrors.CodeConflict):
		admin, err = credentials.GetUserByEmail(ctx, a.cfg.AdminEmail)
	}
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "create admin").Wrap(err)
	}
	if _, err := credentials.AssignRole(ctx, admin.ID, models.RoleAdmin); err != nil {
		return oops.Code("SEED_FAILED").With("operation", "grant admin").Wrap(err)
	}
	cmd.Printf("Admin account ready: %s\n", admin.Email)
	return nil
}
