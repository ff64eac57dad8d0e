package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	houdiniswap "github.com/actuallyrizzn/houdiniswap-sdk"
)

var (
	profile    string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "houdini",
	Short: "A CLI for cross-chain swaps via the Houdini Swap API",
	Long: `houdini is a command-line companion to the Houdini Swap SDK. It lists
supported tokens, fetches quotes and tracks transaction status.

Credentials are read from HOUDINI_SWAP_API_KEY and HOUDINI_SWAP_API_SECRET
(a .env file in the working directory is honored), or from a houdiniswap
config file.

Examples:
  houdini tokens
  houdini tokens --dex --chain base
  houdini quote 1.0 ETH BNB
  houdini status h9NpKm75gRnX7GWaFATwYn --watch`,
	Version: houdiniswap.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "Config profile (dev, staging, prod)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file")
}

func newClient(cmd *cobra.Command) (*houdiniswap.Client, error) {
	cfg, err := houdiniswap.LoadConfig(profile, configFile)
	if err != nil {
		return nil, err
	}

	var options []houdiniswap.Option
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log := logrus.New()
		log.SetLevel(logrus.DebugLevel)
		options = append(options, houdiniswap.WithLogger(houdiniswap.NewLogrusLogger(log)))
	}
	return houdiniswap.NewClientFromConfig(cfg, options...)
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
