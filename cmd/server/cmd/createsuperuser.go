package cmd

import (
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/spf13/cobra"
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "创建超级用户",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" {
			email = cfg.Auth.FirstSuperuserEmail
		}
		if password == "" {
			password = cfg.Auth.FirstSuperuserPassword
		}

		a, err := requireApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.users.EnsureSuperuser(cmd.Context(), email, password); err != nil {
			return err
		}
		logger.Info("Superuser %s is ready", email)
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().String("email", "", "邮箱，默认取 auth.first_superuser_email")
	createSuperuserCmd.Flags().String("password", "", "密码，默认取 auth.first_superuser_password")
}
