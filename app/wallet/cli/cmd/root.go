// Package cmd contains wallet app commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/nameservice"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "BIPWallet deep link tooling",
}

// Execute runs the command selected on the command line.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("account-path", "a", "zblock/accounts/", "Path to the directory with private keys.")
	rootCmd.PersistentFlags().String("base-coin", coin.MainnetBaseCoin, "Symbol of the network base coin.")
}

func accountPath() (string, error) {
	return rootCmd.PersistentFlags().GetString("account-path")
}

func baseCoin() (string, error) {
	return rootCmd.PersistentFlags().GetString("base-coin")
}

func keyPath(acctName, path string) string {
	if !strings.HasSuffix(acctName, nameservice.KeyExt) {
		acctName += nameservice.KeyExt
	}

	return filepath.Join(path, acctName)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
