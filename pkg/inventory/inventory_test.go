package inventory

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/newtron-network/netsurvey/pkg/util"
)

func TestLoad_YAML(t *testing.T) {
	inv, err := Load(filepath.Join("testdata", "lab.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff([]string{"P1", "P3", "P5", "PE1"}, inv.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	p3, err := inv.Device("P3")
	if err != nil {
		t.Fatalf("Device: %v", err)
	}
	if p3.Name != "P3" {
		t.Errorf("Name = %q", p3.Name)
	}
	if p3.Username != "cisco" {
		t.Errorf("Username = %q, want default", p3.Username)
	}
	if p3.Password != "cisco01" {
		t.Errorf("Password = %q, want device override", p3.Password)
	}
	if p3.Target() != "localhost:14022" {
		t.Errorf("Target = %q", p3.Target())
	}
	if p3.SessionTimeout() != 360*time.Second {
		t.Errorf("SessionTimeout = %v, want default 360s", p3.SessionTimeout())
	}

	p5, _ := inv.Device("P5")
	if p5.SessionTimeout() != 30*time.Second {
		t.Errorf("P5 SessionTimeout = %v, want 30s", p5.SessionTimeout())
	}
}

func TestLoad_TOML(t *testing.T) {
	inv, err := Load(filepath.Join("testdata", "lab.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p5, err := inv.Device("P5")
	if err != nil {
		t.Fatalf("Device: %v", err)
	}
	if p5.Identifier != "5.5.5.5" || p5.Port != 16022 || p5.Username != "cisco" {
		t.Errorf("unexpected P5: %+v", p5)
	}
	if p5.SessionTimeout() != DefaultTimeout {
		t.Errorf("SessionTimeout = %v", p5.SessionTimeout())
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"hosts.yaml":    FormatYAML,
		"hosts.yml":     FormatYAML,
		"hosts.TOML":    FormatTOML,
		"/etc/lab.toml": FormatTOML,
		"no-extension":  FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParse_DefaultPort(t *testing.T) {
	inv, err := Parse([]byte("devices:\n  R1:\n    address: 192.0.2.1\n    identifier: 9.9.9.9\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r1, _ := inv.Device("R1")
	if r1.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", r1.Port, DefaultPort)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"no devices", "devices: {}\n", "at least one device"},
		{"missing address", "devices:\n  R1:\n    identifier: 1.1.1.1\n", "R1: address is required"},
		{"missing identifier", "devices:\n  R1:\n    address: h\n", "R1: identifier is required"},
		{"bad port", "devices:\n  R1:\n    address: h\n    identifier: 1.1.1.1\n    port: 70000\n", "R1: port must be"},
		{"bad timeout", "devices:\n  R1:\n    address: h\n    identifier: 1.1.1.1\n    timeout: soon\n", "R1: invalid timeout"},
		{"bad default timeout", "defaults:\n  timeout: -1s\ndevices:\n  R1:\n    address: h\n    identifier: 1.1.1.1\n", "defaults: invalid timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, util.ErrValidationFailed) {
				t.Errorf("error should wrap ErrValidationFailed: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDevice_NotFound(t *testing.T) {
	inv, err := Load(filepath.Join("testdata", "lab.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = inv.Device("P9")
	if !errors.Is(err, util.ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestLookupIdentifier(t *testing.T) {
	inv, err := Load(filepath.Join("testdata", "lab.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	name, ok := inv.LookupIdentifier("5.5.5.5")
	if !ok || name != "P5" {
		t.Errorf("LookupIdentifier(5.5.5.5) = %q, %v; want P5, true", name, ok)
	}
	if _, ok := inv.LookupIdentifier("9.9.9.9"); ok {
		t.Error("LookupIdentifier(9.9.9.9) should not match")
	}
}

func TestOverrideTimeout(t *testing.T) {
	inv, err := Load(filepath.Join("testdata", "lab.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	inv.OverrideTimeout(5 * time.Second)
	for _, name := range inv.Names() {
		dev, _ := inv.Device(name)
		if got := dev.SessionTimeout(); got != 5*time.Second {
			t.Errorf("%s SessionTimeout() = %v, want 5s", name, got)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		_, err := Parse([]byte("devices: [\n"), format)
		if !errors.Is(err, util.ErrInvalidConfig) {
			t.Errorf("%s: error = %v, want ErrInvalidConfig", format, err)
		}
	}
}
