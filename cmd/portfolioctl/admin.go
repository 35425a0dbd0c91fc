package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/db"
	gormstore "github.com/doodlesbykumbi/portfolio-cms/pkg/server/store/gorm"
)

// adminCmd represents the admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'admin' requires a subcommand (create, reset-password)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
}

func addPasswordFlag(cmd *cobra.Command) {
	cmd.Flags().String("password", "", "admin password; read from stdin when omitted")
}

// readPassword returns the --password flag or the first line of in.
func readPassword(cmd *cobra.Command, in io.Reader) ([]byte, error) {
	if pw, _ := cmd.Flags().GetString("password"); pw != "" {
		return []byte(pw), nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, errors.New("no password given")
	}
	return []byte(line), nil
}

// withAdmins connects to the catalog and hands an admin store to fn.
func withAdmins(fn func(*gormstore.AdminsStore) error) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	defer closeDB(database)
	return fn(gormstore.NewAdminsStore(database))
}

func closeDB(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func hashPassword(cmd *cobra.Command) []byte {
	pw, err := readPassword(cmd, os.Stdin)
	if err != nil {
		fail("Failed to read password", err)
	}
	hash, err := authn.HashPassword(pw)
	if err != nil {
		fail("Invalid password", err)
	}
	return hash
}
