package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/bipwallet/deeplink/foundation/minter/wallet"
)

var saveAs string

// mnemonicCmd groups the recovery phrase commands.
var mnemonicCmd = &cobra.Command{
	Use:   "mnemonic",
	Short: "Create or import a BIP-39 recovery phrase",
}

var mnemonicNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Print a new recovery phrase and its address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic, err := wallet.NewMnemonic()
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(cmd.OutOrStdout(), mnemonic); err != nil {
			return err
		}

		return runMnemonicAddress(cmd.OutOrStdout(), mnemonic, saveAs)
	},
}

var mnemonicAddressCmd = &cobra.Command{
	Use:   "address <words>...",
	Short: "Print the address derived from a recovery phrase",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMnemonicAddress(cmd.OutOrStdout(), strings.Join(args, " "), saveAs)
	},
}

func init() {
	rootCmd.AddCommand(mnemonicCmd)
	mnemonicCmd.AddCommand(mnemonicNewCmd, mnemonicAddressCmd)
	mnemonicCmd.PersistentFlags().StringVarP(&saveAs, "save", "s", "", "Save the derived key under this account name.")
}

func runMnemonicAddress(w io.Writer, mnemonic string, name string) error {
	privateKey, err := wallet.PrivateKeyFromMnemonic(mnemonic)
	if err != nil {
		return err
	}

	if name != "" {
		path, err := accountPath()
		if err != nil {
			return err
		}

		if err := crypto.SaveECDSA(keyPath(name, path), privateKey); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(w, wallet.Address(privateKey.PublicKey))
	return err
}
