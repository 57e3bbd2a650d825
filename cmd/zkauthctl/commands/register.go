package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zkauthd/zkauthd/internal/cli/prompt"
)

var registerUser string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user",
	Long: `Register a new user with the server. The password is hashed into a
secret locally and only the derived public signature is sent.

Examples:
  # Register interactively
  zkauthctl register

  # Register with the username on the command line
  zkauthctl register --user alice

  # Register using the 1024-bit group
  zkauthctl register --user alice --group modp-1024/160`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := askUsername(registerUser)
		if err != nil {
			return err
		}
		password, err := prompt.NewPassword(minPasswordLen)
		if err != nil {
			return err
		}

		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Register(cmd.Context(), username, password); err != nil {
			return err
		}
		fmt.Printf("Registered %s\n", username)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUser, "user", "u", "", "Username to register")
}
