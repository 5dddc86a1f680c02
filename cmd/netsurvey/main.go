// Netsurvey - IOS-XR topology survey over NETCONF
//
// Connects to every router in a static inventory, reads BGP, OSPF, LDP,
// bundle and chassis state with fixed subtree filters, and writes one
// sectioned report per device.
//
// Examples:
//
//	netsurvey devices                          # Inventory table
//	netsurvey run                              # Survey every device
//	netsurvey run -d PE1 -d P5 --redis :6379   # Two devices, also store in Redis
//	netsurvey show -d PE1                      # Print one report, do not persist
//	netsurvey journal --failed                 # Devices that did not complete
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/netsurvey/pkg/inventory"
	"github.com/newtron-network/netsurvey/pkg/settings"
	"github.com/newtron-network/netsurvey/pkg/util"
	"github.com/newtron-network/netsurvey/pkg/version"
)

var (
	// Global option flags
	inventoryPath string
	verbose       bool
	logJSON       bool

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "netsurvey",
	Short:             "IOS-XR topology survey over NETCONF",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Netsurvey connects to each router in the inventory over NETCONF, reads
BGP, OSPF, LDP, bundle and linecard state, and writes a report per device.

  netsurvey [--inventory FILE] <command>`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("info")
		}
		if logJSON {
			util.SetJSONFormat()
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}
		if inventoryPath == "" {
			inventoryPath = userSettings.GetInventory()
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("netsurvey " + version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inventoryPath, "inventory", "", "Inventory file (.yaml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadInventory reads the inventory selected by flag or setting.
func loadInventory() (*inventory.Inventory, error) {
	inv, err := inventory.Load(inventoryPath)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	return inv, nil
}
