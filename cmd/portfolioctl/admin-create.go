package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/portfolio-cms/pkg/server/store/gorm"
)

// adminCreateCmd represents the admin create command
var adminCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create an admin account",
	Long: `Create an admin account that can log in to the admin API.

Example:
  echo 'correct horse battery' | portfolioctl admin create editor`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := strings.TrimSpace(args[0])
		if username == "" {
			fail("Invalid username", fmt.Errorf("username must not be blank"))
		}
		hash := hashPassword(cmd)

		err := withAdmins(func(admins *gormstore.AdminsStore) error {
			return admins.CreateAdmin(username, hash)
		})
		if err != nil {
			fail("Failed to create admin", err)
		}
		fmt.Printf("Created admin %s\n", username)
	},
}

func init() {
	adminCmd.AddCommand(adminCreateCmd)
	addPasswordFlag(adminCreateCmd)
}
