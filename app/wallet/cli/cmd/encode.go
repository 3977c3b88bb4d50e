package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/bipwallet/deeplink/business/deeplink"
	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/minter/rawtx"
)

type encodeConfig struct {
	Type     string
	Data     string
	Payload  string
	Nonce    uint64
	GasPrice uint64
	GasCoin  string
	Password string
	Host     string
	BaseCoin string
	CoinFile string
}

var encCfg encodeConfig

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a deep link for a transaction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := baseCoin()
		if err != nil {
			return err
		}
		encCfg.BaseCoin = base

		return runEncode(cmd.OutOrStdout(), encCfg)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encCfg.Type, "type", "t", rawtx.TypeSend.String(), "Transaction type name.")
	encodeCmd.Flags().StringVarP(&encCfg.Data, "data", "d", "", "Hex encoded RLP of the transaction data.")
	encodeCmd.Flags().StringVar(&encCfg.Payload, "payload", "", "Transaction message.")
	encodeCmd.Flags().Uint64VarP(&encCfg.Nonce, "nonce", "n", 0, "Nonce, zero leaves it to the wallet.")
	encodeCmd.Flags().Uint64Var(&encCfg.GasPrice, "gas-price", 0, "Gas price, zero leaves it to the wallet.")
	encodeCmd.Flags().StringVar(&encCfg.GasCoin, "gas-coin", "", "Id or symbol of the coin paying for gas, the base coin when empty.")
	encodeCmd.Flags().StringVarP(&encCfg.CoinFile, "coins", "c", "", "Yaml file with the coin table, used to resolve a gas coin symbol.")
	encodeCmd.Flags().StringVarP(&encCfg.Password, "password", "p", "", "Check password attached to the link.")
	encodeCmd.Flags().StringVar(&encCfg.Host, "host", "bip.to", "Web host of the link.")
}

func runEncode(w io.Writer, cfg encodeConfig) error {
	txType, err := rawtx.ParseTypeName(cfg.Type)
	if err != nil {
		return err
	}

	data := cfg.Data
	if !strings.HasPrefix(data, "0x") {
		data = "0x" + data
	}

	raw, err := hexutil.Decode(data)
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}

	gasCoin, err := gasCoinID(cfg)
	if err != nil {
		return err
	}

	tx := rawtx.Tx{
		Type:      txType,
		Data:      raw,
		Payload:   cfg.Payload,
		Nonce:     &cfg.Nonce,
		GasPrice:  &cfg.GasPrice,
		GasCoinID: &gasCoin,
	}

	d, err := rawtx.EncodeText(tx)
	if err != nil {
		return err
	}

	link := deeplink.Link{Data: d}
	if cfg.Password != "" {
		link.Password = rawtx.EncodePassword(cfg.Password)
	}

	router := deeplink.New(deeplink.Config{Hosts: []string{cfg.Host}})

	_, err = fmt.Fprintln(w, router.WebLink(link))
	return err
}

// gasCoinID accepts a coin id or a symbol known to the coin table.
func gasCoinID(cfg encodeConfig) (uint64, error) {
	if cfg.GasCoin == "" {
		return coin.BaseCoinID, nil
	}

	if id, err := strconv.ParseUint(cfg.GasCoin, 10, 64); err == nil {
		return id, nil
	}

	store := coin.NewStore(coin.Coin{ID: coin.BaseCoinID, Symbol: cfg.BaseCoin})
	if cfg.CoinFile != "" {
		coins, err := coin.LoadFile(cfg.CoinFile)
		if err != nil {
			return 0, err
		}
		store.Replace(coins)
	}

	c, exists := store.CoinBySymbol(cfg.GasCoin)
	if !exists {
		return 0, fmt.Errorf("gas coin %q is not in the coin table", cfg.GasCoin)
	}

	return c.ID, nil
}
