// Package inventory loads the static device inventory: the named devices a
// survey connects to and the identifiers used to resolve discovered neighbors
// back to device names.
package inventory

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/newtron-network/netsurvey/pkg/util"
)

const (
	// DefaultPort is the IANA NETCONF-over-SSH port.
	DefaultPort = 830

	// DefaultTimeout bounds dial and every read/write on a device session.
	DefaultTimeout = 360 * time.Second
)

// Device holds connection parameters for one inventory entry.
type Device struct {
	Name       string `yaml:"-" toml:"-"`
	Address    string `yaml:"address" toml:"address"`
	Port       int    `yaml:"port,omitempty" toml:"port"`
	Username   string `yaml:"username,omitempty" toml:"username"`
	Password   string `yaml:"password,omitempty" toml:"password"`
	Identifier string `yaml:"identifier" toml:"identifier"`
	Timeout    string `yaml:"timeout,omitempty" toml:"timeout"`

	timeout time.Duration
}

// Target returns the host:port dial address.
func (d *Device) Target() string {
	return net.JoinHostPort(d.Address, strconv.Itoa(d.Port))
}

// SessionTimeout returns the resolved per-session timeout.
func (d *Device) SessionTimeout() time.Duration {
	if d.timeout == 0 {
		return DefaultTimeout
	}
	return d.timeout
}

// OverrideTimeout replaces the resolved session timeout of every device.
func (inv *Inventory) OverrideTimeout(d time.Duration) {
	for _, dev := range inv.Devices {
		if dev != nil {
			dev.timeout = d
		}
	}
}

// Defaults are applied to devices that leave the field unset.
type Defaults struct {
	Port     int    `yaml:"port,omitempty" toml:"port"`
	Username string `yaml:"username,omitempty" toml:"username"`
	Password string `yaml:"password,omitempty" toml:"password"`
	Timeout  string `yaml:"timeout,omitempty" toml:"timeout"`
}

// Inventory is the static, read-only device table.
type Inventory struct {
	Defaults Defaults           `yaml:"defaults" toml:"defaults"`
	Devices  map[string]*Device `yaml:"devices" toml:"devices"`
}

// Format selects the inventory file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension; anything other than
// .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads, resolves and validates an inventory file.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory file: %w", err)
	}
	inv, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inv, nil
}

// Parse decodes inventory data, overlays defaults and validates the result.
func Parse(data []byte, format Format) (*Inventory, error) {
	var inv Inventory
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &inv); err != nil {
			return nil, fmt.Errorf("%w: parsing inventory TOML: %v", util.ErrInvalidConfig, err)
		}
	default:
		if err := yaml.Unmarshal(data, &inv); err != nil {
			return nil, fmt.Errorf("%w: parsing inventory YAML: %v", util.ErrInvalidConfig, err)
		}
	}

	if err := inv.resolve(); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (inv *Inventory) resolve() error {
	v := &util.ValidationBuilder{}
	if len(inv.Devices) == 0 {
		v.AddError("at least one device is required")
	}

	var defaultTimeout time.Duration
	if inv.Defaults.Timeout != "" {
		d, err := time.ParseDuration(inv.Defaults.Timeout)
		if err != nil || d <= 0 {
			v.AddErrorf("defaults: invalid timeout %q", inv.Defaults.Timeout)
		}
		defaultTimeout = d
	}

	for _, name := range inv.Names() {
		dev := inv.Devices[name]
		if dev == nil {
			v.AddErrorf("device %s: empty entry", name)
			continue
		}
		dev.Name = name
		if dev.Port == 0 {
			dev.Port = inv.Defaults.Port
		}
		if dev.Port == 0 {
			dev.Port = DefaultPort
		}
		if dev.Username == "" {
			dev.Username = inv.Defaults.Username
		}
		if dev.Password == "" {
			dev.Password = inv.Defaults.Password
		}
		dev.timeout = defaultTimeout
		if dev.Timeout != "" {
			d, err := time.ParseDuration(dev.Timeout)
			if err != nil || d <= 0 {
				v.AddErrorf("device %s: invalid timeout %q", name, dev.Timeout)
			}
			dev.timeout = d
		}

		v.Add(dev.Address != "", fmt.Sprintf("device %s: address is required", name))
		v.Add(dev.Identifier != "", fmt.Sprintf("device %s: identifier is required", name))
		if err := util.ValidatePort(dev.Port); err != nil {
			v.AddErrorf("device %s: %v", name, err)
		}
		if dev.Identifier != "" && !util.IsValidIPv4(dev.Identifier) {
			util.WithDevice(name).Warnf("identifier %q is not an IPv4 address; LDP neighbors will not resolve to it", dev.Identifier)
		}
	}
	return v.Build()
}

// Names returns device names in sorted order.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.Devices))
	for name := range inv.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Device returns the named device.
func (inv *Inventory) Device(name string) (*Device, error) {
	dev, ok := inv.Devices[name]
	if !ok || dev == nil {
		return nil, fmt.Errorf("%w: %s", util.ErrDeviceNotFound, name)
	}
	return dev, nil
}

// LookupIdentifier scans the inventory for a device whose identifier equals
// id. Scan order is unspecified; with duplicate identifiers any match may win.
func (inv *Inventory) LookupIdentifier(id string) (string, bool) {
	for name, dev := range inv.Devices {
		if dev != nil && dev.Identifier == id {
			return name, true
		}
	}
	return "", false
}
