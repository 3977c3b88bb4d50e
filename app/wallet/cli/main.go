package main

import "github.com/bipwallet/deeplink/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
