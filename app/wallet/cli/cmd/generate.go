package cmd

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/bipwallet/deeplink/foundation/minter/wallet"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <name>",
	Args:  cobra.ExactArgs(1),
	Short: "Generate new key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := accountPath()
		if err != nil {
			return err
		}

		return runKeyGen(cmd.OutOrStdout(), keyPath(args[0], path))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runKeyGen(w io.Writer, dest string) error {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return err
	}

	if err := crypto.SaveECDSA(dest, privateKey); err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, wallet.Address(privateKey.PublicKey))
	return err
}
