package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zkauthd/zkauthd/internal/cli/prompt"
)

var loginUser string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and obtain a session id",
	Long: `Authenticate against the server by answering its challenge with a
zero-knowledge proof of the password-derived secret. Prints the session
id on success.

The --group flag must match the group the user registered with.

Examples:
  # Log in interactively
  zkauthctl login

  # Log in with the username on the command line
  zkauthctl login --user alice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := askUsername(loginUser)
		if err != nil {
			return err
		}
		password, err := prompt.Password("Password")
		if err != nil {
			return err
		}

		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()

		sessionID, err := c.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", username)
		fmt.Printf("Session: %s\n", sessionID)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "Username to authenticate")
}
