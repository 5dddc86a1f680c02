package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/newtron-network/netsurvey/pkg/cli"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List inventory devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := loadInventory()
		if err != nil {
			return err
		}

		t := cli.NewTableTo(cmd.OutOrStdout(), "NAME", "ADDRESS", "PORT", "USERNAME", "IDENTIFIER", "TIMEOUT")
		for _, name := range inv.Names() {
			dev, _ := inv.Device(name)
			t.Row(name, dev.Address, strconv.Itoa(dev.Port), dev.Username, dev.Identifier, dev.SessionTimeout().String())
		}
		return t.Flush()
	},
}
