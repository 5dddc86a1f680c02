// Package device opens NETCONF sessions to routers and issues the
// subtree-filtered queries the extractors are built on.
package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Juniper/go-netconf/netconf"
	"golang.org/x/crypto/ssh"

	"github.com/newtron-network/netsurvey/pkg/inventory"
	"github.com/newtron-network/netsurvey/pkg/util"
)

// Querier fetches one subtree-filtered document from a device.
type Querier interface {
	Get(ctx context.Context, filter string) ([]byte, error)
}

// Conn is a Querier that holds a device session open until closed.
type Conn interface {
	Querier
	Close() error
}

// DialFunc opens a session to an inventory device.
type DialFunc func(ctx context.Context, dev *inventory.Device) (Conn, error)

// Session is a NETCONF-over-SSH session to one device.
type Session struct {
	Name string

	nc        *netconf.Session
	connected bool
	mu        sync.Mutex
}

// Dial connects to dev and completes the NETCONF hello exchange. The device's
// session timeout bounds the dial and every subsequent read or write.
func Dial(ctx context.Context, dev *inventory.Device) (Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := dev.SessionTimeout()
	nc, err := netconf.DialSSHTimeout(dev.Target(), clientConfig(dev, timeout), timeout)
	if err != nil {
		return nil, fmt.Errorf("NETCONF dial %s (%s): %w", dev.Name, dev.Target(), err)
	}

	util.WithDevice(dev.Name).WithField("session_id", nc.SessionID).Debug("Connected")
	return &Session{Name: dev.Name, nc: nc, connected: true}, nil
}

// clientConfig builds password and keyboard-interactive auth; IOS-XR offers
// only the latter on some images.
func clientConfig(dev *inventory.Device, timeout time.Duration) *ssh.ClientConfig {
	return &ssh.ClientConfig{
		User: dev.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(dev.Password),
			ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = dev.Password
				}
				return answers, nil
			}),
		},
		// Lab inventories carry no host keys.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}
}

// Get sends <get> with the given subtree filter and returns the reply body
// (the content of <rpc-reply>, normally a single <data> element).
func (s *Session) Get(ctx context.Context, filter string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil, util.ErrNotConnected
	}

	type result struct {
		reply *netconf.RPCReply
		err   error
	}
	done := make(chan result, 1)
	go func() {
		reply, err := s.nc.Exec(netconf.RawMethod(GetRPC(filter)))
		done <- result{reply, err}
	}()

	select {
	case <-ctx.Done():
		// Closing the transport unblocks the pending Exec.
		s.nc.Close()
		s.connected = false
		<-done
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("NETCONF get on %s: %w", s.Name, r.err)
		}
		return []byte(r.reply.Data), nil
	}
}

// Close ends the session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}
	s.connected = false
	util.WithDevice(s.Name).Debug("Disconnected")
	return s.nc.Close()
}

// GetRPC wraps a subtree filter in a <get> operation.
func GetRPC(filter string) string {
	return `<get><filter type="subtree">` + filter + `</filter></get>`
}
