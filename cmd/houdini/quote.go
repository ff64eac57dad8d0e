package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	quoteAnonymous bool
	quoteUseXmr    bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <from> <to>",
	Short: "Get a CEX exchange quote",
	Long: `Fetch a quote for exchanging one token for another.

Examples:
  houdini quote 1.0 ETH BNB
  houdini quote 0.5 BTC XMR --anonymous`,
	Args: cobra.ExactArgs(3),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().BoolVar(&quoteAnonymous, "anonymous", false, "Request an anonymous quote")
	quoteCmd.Flags().BoolVar(&quoteUseXmr, "use-xmr", false, "Route through XMR")
}

func runQuote(cmd *cobra.Command, args []string) {
	amount, from, to := args[0], args[1], args[2]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	var useXmr *bool
	if quoteUseXmr {
		useXmr = &quoteUseXmr
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching quote..."
		s.Start()
	}
	quote, err := client.GetCEXQuote(cmd.Context(), amount, from, to, quoteAnonymous, useXmr)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(quote, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                        QUOTE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n  You send:     %s %s\n", color.YellowString(quote.AmountIn.String()), strings.ToUpper(from))
	fmt.Printf("  You receive:  %s %s\n", color.YellowString(quote.AmountOut.String()), strings.ToUpper(to))
	if quote.Min != nil {
		fmt.Printf("  Minimum:      %s %s\n", quote.Min.String(), strings.ToUpper(from))
	}
	if quote.Max != nil {
		fmt.Printf("  Maximum:      %s %s\n", quote.Max.String(), strings.ToUpper(from))
	}
	if quote.Duration != nil {
		fmt.Printf("  ETA:          ~%d min\n", *quote.Duration)
	}
	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
