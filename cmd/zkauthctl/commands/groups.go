package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zkauthd/zkauthd/internal/cli/output"
	"github.com/zkauthd/zkauthd/pkg/zkp"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the available mod-p groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0, len(zkp.IDs()))
		for _, id := range zkp.IDs() {
			g, err := zkp.Lookup(id)
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				id.String(),
				fmt.Sprintf("%d", g.P.BitLen()),
				fmt.Sprintf("%d", g.Q.BitLen()),
			})
		}
		output.PrintTable(os.Stdout, []string{"name", "p bits", "q bits"}, rows)
		return nil
	},
}
