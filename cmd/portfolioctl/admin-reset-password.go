package main

import (
	"fmt"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/portfolio-cms/pkg/server/store/gorm"
)

// adminResetPasswordCmd represents the admin reset-password command
var adminResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <username>",
	Short: "Set a new password for an admin account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hash := hashPassword(cmd)

		err := withAdmins(func(admins *gormstore.AdminsStore) error {
			return admins.UpdateAdminPassword(args[0], hash)
		})
		if err != nil {
			fail("Failed to reset password", err)
		}
		fmt.Printf("Password updated for %s\n", args[0])
	},
}

func init() {
	adminCmd.AddCommand(adminResetPasswordCmd)
	addPasswordFlag(adminResetPasswordCmd)
}
