package cmd

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/bipwallet/deeplink/foundation/minter/wallet"
)

// accountCmd represents the account command
var accountCmd = &cobra.Command{
	Use:   "account <name>",
	Short: "Print the Mx address of the specified account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := accountPath()
		if err != nil {
			return err
		}

		return runAccount(cmd.OutOrStdout(), keyPath(args[0], path))
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func runAccount(w io.Writer, user string) error {
	privateKey, err := crypto.LoadECDSA(user)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, wallet.Address(privateKey.PublicKey))
	return err
}
