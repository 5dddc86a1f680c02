package device

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/newtron-network/netsurvey/pkg/inventory"
	"github.com/newtron-network/netsurvey/pkg/util"
)

func TestGetRPC(t *testing.T) {
	got := GetRPC(`<platform xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-plat-chas-invmgr-ng-oper"/>`)
	if !strings.HasPrefix(got, `<get><filter type="subtree"><platform`) {
		t.Errorf("unexpected prefix: %s", got)
	}
	if !strings.HasSuffix(got, `</filter></get>`) {
		t.Errorf("unexpected suffix: %s", got)
	}
}

func TestClientConfig(t *testing.T) {
	dev := &inventory.Device{Name: "P1", Address: "localhost", Port: 12022, Username: "cisco", Password: "cisco"}
	cfg := clientConfig(dev, 5*time.Second)

	if cfg.User != "cisco" {
		t.Errorf("User = %q", cfg.User)
	}
	if len(cfg.Auth) != 2 {
		t.Errorf("expected password and keyboard-interactive auth, got %d methods", len(cfg.Auth))
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.HostKeyCallback == nil {
		t.Error("HostKeyCallback must be set")
	}
}

func TestDial_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dev := &inventory.Device{Name: "P1", Address: "192.0.2.1", Port: 830}
	if _, err := Dial(ctx, dev); !errors.Is(err, context.Canceled) {
		t.Errorf("Dial error = %v, want context.Canceled", err)
	}
}

func TestSession_NotConnected(t *testing.T) {
	s := &Session{Name: "P1"}
	if _, err := s.Get(context.Background(), "<bgp/>"); !errors.Is(err, util.ErrNotConnected) {
		t.Errorf("Get error = %v, want ErrNotConnected", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on idle session: %v", err)
	}
}
