package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/newtron-network/netsurvey/pkg/device"
	"github.com/newtron-network/netsurvey/pkg/inventory"
	"github.com/newtron-network/netsurvey/pkg/journal"
	"github.com/newtron-network/netsurvey/pkg/util"
)

// Sink persists a finished report.
type Sink interface {
	Name() string
	Write(ctx context.Context, rep *Report) error
}

// Runner surveys inventory devices one at a time. A failure on one device is
// logged and journaled, and the run moves on to the next device.
type Runner struct {
	Inventory *inventory.Inventory
	Dial      device.DialFunc
	Sinks     []Sink
	Journal   journal.Recorder
	RunID     string
}

// Summary lists per-device outcomes of a run.
type Summary struct {
	RunID     string
	Succeeded []string
	Failed    map[string]error
	Degraded  map[string][]string // succeeded devices with empty-fallback sections
}

// Run surveys the named devices, or every inventory device when names is
// empty, in sorted order. It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context, names []string) (*Summary, error) {
	if len(names) == 0 {
		names = r.Inventory.Names()
	}
	sum := &Summary{RunID: r.RunID, Failed: make(map[string]error), Degraded: make(map[string][]string)}
	log := util.WithRun(r.RunID)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		start := time.Now()
		event := journal.NewEvent(r.RunID, name)

		rep, err := r.RunDevice(ctx, name)
		if err != nil {
			log.WithField("device", name).Errorf("Survey failed: %v", err)
			sum.Failed[name] = err
			event.WithError(err)
		} else {
			log.WithField("device", name).Info("Survey complete")
			sum.Succeeded = append(sum.Succeeded, name)
			degraded := degradedSections(rep)
			if len(degraded) > 0 {
				sum.Degraded[name] = degraded
			}
			event.WithSuccess().WithDegraded(degraded...)
			for _, s := range r.Sinks {
				event.WithSinks(s.Name())
			}
		}

		if r.Journal != nil {
			if jerr := r.Journal.Record(event.WithDuration(time.Since(start))); jerr != nil {
				log.Warnf("Journal write failed: %v", jerr)
			}
		}
	}
	return sum, nil
}

// RunDevice surveys a single device and hands the report to every sink.
func (r *Runner) RunDevice(ctx context.Context, name string) (*Report, error) {
	rep, err := r.Collect(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, s := range r.Sinks {
		if err := s.Write(ctx, rep); err != nil {
			return nil, util.NewDeviceError(name, "write "+s.Name(), err)
		}
	}
	return rep, nil
}

// Collect opens a session to the named device, runs the collector and
// closes the session.
func (r *Runner) Collect(ctx context.Context, name string) (*Report, error) {
	dev, err := r.Inventory.Device(name)
	if err != nil {
		return nil, err
	}

	dial := r.Dial
	if dial == nil {
		dial = device.Dial
	}
	conn, err := dial(ctx, dev)
	if err != nil {
		return nil, util.NewDeviceError(name, "connect", err)
	}
	defer conn.Close()

	rep, err := NewCollector(r.Inventory, r.RunID).Collect(ctx, conn, name)
	if err != nil {
		return nil, util.NewDeviceError(name, "extract", err)
	}
	return rep, nil
}

func degradedSections(rep *Report) []string {
	var out []string
	if rep.Core.Degraded() {
		out = append(out, CoreInterfacesExtractor.Name)
	}
	if rep.Bundles.Degraded() {
		out = append(out, BundlesExtractor.Name)
	}
	return out
}

// String summarizes the outcome counts.
func (s *Summary) String() string {
	return fmt.Sprintf("run %s: %d succeeded, %d failed", s.RunID, len(s.Succeeded), len(s.Failed))
}
