// Package commands implements the CLI commands for the zkauthctl
// client.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zkauthd/zkauthd/internal/cli/prompt"
	"github.com/zkauthd/zkauthd/pkg/client"
	"github.com/zkauthd/zkauthd/pkg/zkp"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	serverAddr string
	groupName  string
)

const (
	maxUsernameLen = 24
	minPasswordLen = 8
)

var rootCmd = &cobra.Command{
	Use:   "zkauthctl",
	Short: "zkauthctl - Client for the zkauthd authentication service",
	Long: `zkauthctl registers users and authenticates against a zkauthd server
using the Chaum-Pedersen zero-knowledge protocol. The password never
leaves this machine; only group elements derived from it do.

Use "zkauthctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverAddr, "server", "s", "localhost:50055", "zkauthd server address")
	rootCmd.PersistentFlags().StringVarP(&groupName, "group", "g", zkp.GroupModP2048Q256.String(), "mod-p group (see \"zkauthctl groups\")")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(groupsCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// dial opens a client with the group selected by the --group flag.
func dial() (*client.Client, error) {
	id, err := parseGroup(groupName)
	if err != nil {
		return nil, err
	}
	return client.Dial(serverAddr, client.WithGroup(id))
}

func parseGroup(name string) (zkp.GroupID, error) {
	for _, id := range zkp.IDs() {
		if id.String() == name {
			return id, nil
		}
	}
	return zkp.GroupUnspecified, fmt.Errorf("unknown group %q (see \"zkauthctl groups\")", name)
}

func validateUsername(input string) error {
	if input == "" {
		return fmt.Errorf("username required")
	}
	if len(input) > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	return nil
}

// askUsername uses the flag value when given, otherwise prompts.
func askUsername(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, validateUsername(flagValue)
	}
	return prompt.Input("Username", validateUsername)
}
