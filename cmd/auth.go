package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgectl/edgectl/config"
)

var authToken string

// authCmd groups credential management
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the personal token stored in the OS keychain",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save a personal token",
	Long: `Save the Skylift personal token to your OS keychain. The token is
read from --token or prompted for on stdin. Config-file and EDGECTL_TOKEN
environment tokens take precedence over the keychain entry.`,
	RunE: runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE:  runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)

	authLoginCmd.Flags().StringVar(&authToken, "token", "", "personal token (prompted when omitted)")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	token := strings.TrimSpace(authToken)
	if token == "" {
		fmt.Print("Personal token: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("no token provided")
	}

	store, err := config.OpenTokenStore()
	if err != nil {
		return err
	}
	if err := store.Save(token); err != nil {
		return err
	}

	fmt.Println("Token saved.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	store, err := config.OpenTokenStore()
	if err != nil {
		return err
	}

	_, err = store.Load()
	if err != nil {
		if errors.Is(err, config.ErrTokenNotFound) {
			fmt.Println("No token stored.")
			return nil
		}
		return err
	}

	fmt.Println("Token stored in keychain.")
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	store, err := config.OpenTokenStore()
	if err != nil {
		return err
	}
	if err := store.Delete(); err != nil {
		return err
	}

	fmt.Println("Token removed.")
	return nil
}
