package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	houdiniswap "github.com/actuallyrizzn/houdiniswap-sdk"
)

var (
	listDEX      bool
	filterChain  string
	filterSymbol string
	listPageSize int
)

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens", "ls"},
	Short:   "List supported tokens",
	Long: `List tokens supported by the Houdini Swap API.

By default the CEX token listing is shown; pass --dex to walk the paginated
DEX token listing instead.

Examples:
  houdini tokens
  houdini tokens --symbol ETH
  houdini tokens --dex --chain base`,
	Run: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().BoolVar(&listDEX, "dex", false, "List DEX tokens instead of CEX tokens")
	tokensCmd.Flags().StringVar(&filterChain, "chain", "", "Filter by chain short name (DEX only)")
	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by token symbol (CEX only)")
	tokensCmd.Flags().IntVar(&listPageSize, "page-size", 100, "Page size for the DEX listing")
}

func runTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching supported tokens..."
		s.Start()
	}

	var result any
	if listDEX {
		result, err = client.GetAllDEXTokens(cmd.Context(), filterChain, listPageSize)
	} else {
		var tokens []houdiniswap.Token
		tokens, err = client.GetCEXTokens(cmd.Context())
		if err == nil && filterSymbol != "" {
			var filtered []houdiniswap.Token
			for _, token := range tokens {
				if strings.Contains(strings.ToUpper(token.Symbol), strings.ToUpper(filterSymbol)) {
					filtered = append(filtered, token)
				}
			}
			tokens = filtered
		}
		result = tokens
	}
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	switch tokens := result.(type) {
	case []houdiniswap.Token:
		displayCEXTokens(tokens)
	case []houdiniswap.DEXToken:
		displayDEXTokens(tokens)
	}
}

func displayCEXTokens(tokens []houdiniswap.Token) {
	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	color.Green("                          SUPPORTED TOKENS")
	fmt.Println(strings.Repeat("=", 80))

	byNetwork := make(map[string][]houdiniswap.Token)
	for _, token := range tokens {
		byNetwork[token.Network.Name] = append(byNetwork[token.Network.Name], token)
	}
	networks := make([]string, 0, len(byNetwork))
	for network := range byNetwork {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	for _, network := range networks {
		color.Cyan("\n%s", strings.ToUpper(network))
		fmt.Println(strings.Repeat("-", 80))
		for _, token := range byNetwork[network] {
			fmt.Printf("  %-10s  %-30s %s\n",
				color.YellowString(token.Symbol),
				token.Name,
				color.HiBlackString(token.ID))
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("\nTotal: %d tokens across %d networks\n\n", len(tokens), len(networks))
}

func displayDEXTokens(tokens []houdiniswap.DEXToken) {
	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	color.Green("                          DEX TOKENS")
	fmt.Println(strings.Repeat("=", 80))

	for _, token := range tokens {
		address := token.Address
		if len(address) > 40 {
			address = address[:37] + "..."
		}
		fmt.Printf("  %-10s  %-12s %s\n",
			color.YellowString(token.Symbol),
			token.Chain,
			color.HiBlackString(address))
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("\nTotal: %d tokens\n\n", len(tokens))
}
