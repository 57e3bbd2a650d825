package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	priceSession string
	priceSymbol  string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Fetch the demo price quote",
	Long: `Fetch the demo price quote using an authenticated session. Obtain a
session id with "zkauthctl login" first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()

		price, err := c.GetPrice(cmd.Context(), priceSession, priceSymbol)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", priceSymbol, price)
		return nil
	},
}

func init() {
	priceCmd.Flags().StringVar(&priceSession, "session", "", "Session id from a previous login")
	priceCmd.Flags().StringVar(&priceSymbol, "symbol", "BTC", "Symbol to quote")
	_ = priceCmd.MarkFlagRequired("session")
}
