package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/bipwallet/deeplink/business/confirm"
	"github.com/bipwallet/deeplink/business/deeplink"
	v1 "github.com/bipwallet/deeplink/business/web/v1"
	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/nameservice"
)

var (
	serviceURL string
	scheme     string
	hosts      []string
	coinFile   string
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <link>",
	Short: "Print the confirmation screen of a deep link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if serviceURL != "" {
			return runRemoteDecode(cmd.OutOrStdout(), serviceURL, args[0])
		}

		path, err := accountPath()
		if err != nil {
			return err
		}

		base, err := baseCoin()
		if err != nil {
			return err
		}

		return runDecode(cmd.OutOrStdout(), args[0], decodeConfig{
			Scheme:   scheme,
			Hosts:    hosts,
			BaseCoin: base,
			CoinFile: coinFile,
			Accounts: path,
		})
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&serviceURL, "url", "u", "", "Url of a deep link service, the link is decoded locally when empty.")
	decodeCmd.Flags().StringVar(&scheme, "scheme", "minter", "Custom scheme of the wallet links.")
	decodeCmd.Flags().StringSliceVar(&hosts, "host", []string{"bip.to"}, "Web hosts of the wallet links.")
	decodeCmd.Flags().StringVarP(&coinFile, "coins", "c", "", "Yaml file with the coin table.")
}

type decodeConfig struct {
	Scheme   string
	Hosts    []string
	BaseCoin string
	CoinFile string
	Accounts string
}

func runDecode(w io.Writer, link string, cfg decodeConfig) error {
	store := coin.NewStore(coin.Coin{ID: coin.BaseCoinID, Symbol: cfg.BaseCoin})

	if cfg.CoinFile != "" {
		coins, err := coin.LoadFile(cfg.CoinFile)
		if err != nil {
			return err
		}
		store.Replace(coins)
	}

	ns, err := nameservice.New(cfg.Accounts)
	if err != nil {
		return err
	}

	router := deeplink.New(deeplink.Config{
		Scheme:   cfg.Scheme,
		Hosts:    cfg.Hosts,
		BaseCoin: cfg.BaseCoin,
		Coins:    store,
	})

	trx, err := router.Resolve(link)
	if err != nil {
		return fmt.Errorf("%w: %s", deeplink.ErrUnhandled, deeplink.Reason(err))
	}

	builder := confirm.Builder{
		Coins:    store,
		Names:    ns,
		BaseCoin: cfg.BaseCoin,
	}

	m, err := builder.Build(trx)
	if err != nil {
		return fmt.Errorf("%w: %s", deeplink.ErrUnhandled, deeplink.Reason(err))
	}

	return printJSON(w, m)
}

func runRemoteDecode(w io.Writer, service string, link string) error {
	var m confirm.Model
	var er v1.ErrorResponse

	resp, err := resty.New().
		SetBaseURL(service).
		R().
		SetBody(map[string]string{"url": link}).
		SetResult(&m).
		SetError(&er).
		Post("/v1/links/decode")
	if err != nil {
		return err
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%s: %s", resp.Status(), er.Error)
	}

	return printJSON(w, m)
}
