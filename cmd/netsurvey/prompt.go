package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/newtron-network/netsurvey/pkg/inventory"
)

// passwordReader prompts for and returns a secret.
type passwordReader func(prompt string) (string, error)

// fillPasswords asks once for a password and applies it to every selected
// device that has a username but no password. An empty names list selects
// the whole inventory.
func fillPasswords(inv *inventory.Inventory, names []string, read passwordReader) error {
	if len(names) == 0 {
		names = inv.Names()
	}

	var password string
	asked := false
	for _, name := range names {
		dev, err := inv.Device(name)
		if err != nil {
			// Unknown names are reported per device by the runner.
			continue
		}
		if dev.Username == "" || dev.Password != "" {
			continue
		}
		if !asked {
			password, err = read(fmt.Sprintf("Password for %s: ", dev.Username))
			if err != nil {
				return fmt.Errorf("reading password for %s: %w", name, err)
			}
			asked = true
		}
		dev.Password = password
	}
	return nil
}

func terminalPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password in inventory and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
