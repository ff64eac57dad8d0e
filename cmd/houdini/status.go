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

	houdiniswap "github.com/actuallyrizzn/houdiniswap-sdk"
)

var (
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status <houdini-id>",
	Short: "Check the status of a transaction",
	Long: `Check the lifecycle status of a transaction by its houdini id.

Examples:
  houdini status h9NpKm75gRnX7GWaFATwYn
  houdini status h9NpKm75gRnX7GWaFATwYn --watch
  houdini status h9NpKm75gRnX7GWaFATwYn --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates until a terminal state")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	houdiniID := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	if watchStatus {
		if jsonOutput {
			fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
			os.Exit(1)
		}
		watchTransaction(cmd, client, houdiniID)
		return
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking transaction status..."
		s.Start()
	}
	status, err := client.GetStatus(cmd.Context(), houdiniID)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(status, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	displayStatus(status)
}

func watchTransaction(cmd *cobra.Command, client *houdiniswap.Client, houdiniID string) {
	fmt.Printf("\nWatching transaction %s\n", color.CyanString(houdiniID))
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	for {
		status, err := client.GetStatus(cmd.Context(), houdiniID)
		if err != nil {
			color.Red("Error: %v", err)
		} else {
			displayStatus(status)
			if status.Status.IsTerminal() {
				return
			}
		}
		<-ticker.C
	}
}

func displayStatus(status houdiniswap.Status) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                      TRANSACTION STATUS")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Houdini ID:  %s\n", color.CyanString(status.HoudiniID))
	fmt.Printf("  Status:      %s\n", coloredStatus(status.Status))
	if status.InAmount != nil {
		fmt.Printf("  Amount In:   %s %s\n", status.InAmount.String(), status.InSymbol)
	}
	if status.OutAmount != nil {
		fmt.Printf("  Amount Out:  %s %s\n", status.OutAmount.String(), status.OutSymbol)
	}
	if status.ReceiverAddress != "" {
		fmt.Printf("  Receiver:    %s\n", color.HiBlackString(status.ReceiverAddress))
	}
	if status.ETA != nil {
		fmt.Printf("  ETA:         ~%d min\n", *status.ETA)
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func coloredStatus(status houdiniswap.TransactionStatus) string {
	name := status.String()
	switch status {
	case houdiniswap.StatusFinished:
		return color.GreenString(name)
	case houdiniswap.StatusFailed, houdiniswap.StatusExpired, houdiniswap.StatusRefunded:
		return color.RedString(name)
	case houdiniswap.StatusDeleted:
		return color.MagentaString(name)
	default:
		return color.YellowString(name)
	}
}
