package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session token",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	resp, err := a.client.Login(cmd.Context(), loginEmail)
	if err != nil {
		return err
	}

	if err := os.WriteFile(a.tokenPath(), []byte(resp.Token), 0o600); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
	return nil
}
