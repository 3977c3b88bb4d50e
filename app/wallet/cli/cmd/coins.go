package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/minter/explorer"
)

var (
	coinsURL    string
	explorerURL string
)

// coinsCmd represents the coins command
var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "Print the coin table of a deep link service or an explorer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var coins []coin.Coin
		var err error

		switch explorerURL {
		case "":
			coins, err = serviceCoins(ctx, coinsURL)
		default:
			coins, err = explorer.New(explorerURL, 10*time.Second).Coins(ctx)
		}
		if err != nil {
			return err
		}

		return printCoins(cmd.OutOrStdout(), coins)
	},
}

func init() {
	rootCmd.AddCommand(coinsCmd)
	coinsCmd.Flags().StringVarP(&coinsURL, "url", "u", "http://localhost:8080", "Url of the deep link service.")
	coinsCmd.Flags().StringVarP(&explorerURL, "explorer", "e", "", "Url of an explorer, used instead of the service when set.")
}

func serviceCoins(ctx context.Context, service string) ([]coin.Coin, error) {
	var coins []coin.Coin

	resp, err := resty.New().
		SetBaseURL(service).
		R().
		SetContext(ctx).
		SetResult(&coins).
		Get("/v1/coins")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("requesting coins: %s", resp.Status())
	}

	return coins, nil
}

func printCoins(w io.Writer, coins []coin.Coin) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tSYMBOL\tNAME\tCRR")
	for _, c := range coins {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", c.ID, c.Symbol, c.Name, c.Crr)
	}

	return tw.Flush()
}
