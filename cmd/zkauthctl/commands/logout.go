package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutSession string

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Logout(cmd.Context(), logoutSession); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

func init() {
	logoutCmd.Flags().StringVar(&logoutSession, "session", "", "Session id to close")
	_ = logoutCmd.MarkFlagRequired("session")
}
