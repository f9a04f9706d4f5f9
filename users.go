package main

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewUsersCmd creates the users subcommand group.
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and manage user accounts",
	}
	cmd.AddCommand(newUsersListCmd(), newUsersGrantCmd(), newUsersPasswdCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users with their roles and favorites count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			users, err := a.credentials().ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			table := tablewriter.NewTable(cmd.OutOrStdout())
			table.Header("ID", "Email", "Status", "Roles", "Favorites")
			for _, u := range users {
				status := "active"
				if !u.User.IsActive {
					status = "inactive"
				}
				row := []any{
					strconv.FormatUint(uint64(u.User.ID), 10),
					u.User.Email,
					status,
					strings.Join(u.User.RoleNames(), ","),
					strconv.FormatInt(u.FavoritesCount, 10),
				}
				if err := table.Append(row...); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}

func newUsersGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <email> <role>",
		Short: "Grant a role to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			credentials := a.credentials()
			user, err := credentials.GetUserByEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			user, err = credentials.AssignRole(cmd.Context(), user.ID, args[1])
			if err != nil {
				return err
			}
			cmd.Printf("%s now has roles: %s\n", user.Email, strings.Join(user.RoleNames(), ", "))
			return nil
		},
	}
}

func newUsersPasswdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd <email> <password>",
		Short: "Set a user's password",
		Long:  `Set a user's password. Tokens issued before the change stay valid until they expire.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			credentials := a.credentials()
			user, err := credentials.GetUserByEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := credentials.SetPassword(cmd.Context(), user.ID, args[1]); err != nil {
				return err
			}
			cmd.Printf("Password updated for %s\n", user.Email)
			return nil
		},
	}
}
