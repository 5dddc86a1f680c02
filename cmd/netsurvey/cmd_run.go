package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/newtron-network/netsurvey/pkg/cli"
	"github.com/newtron-network/netsurvey/pkg/discovery"
	"github.com/newtron-network/netsurvey/pkg/inventory"
	"github.com/newtron-network/netsurvey/pkg/journal"
	"github.com/newtron-network/netsurvey/pkg/report"
	"github.com/newtron-network/netsurvey/pkg/util"
)

var (
	runDevices   []string
	runReportDir string
	runRedisAddr string
	runRedisDB   int
	runTimeout   time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Survey inventory devices and write reports",
	Long: `Survey devices one at a time in sorted-name order. A device that fails is
logged and journaled, and the run continues with the next device.

Reports are written to <report-dir>/DUT_<device>.txt, and also stored as
Redis hashes NETSURVEY|<device> when --redis (or the redis_addr setting)
is given.

Examples:
  netsurvey run
  netsurvey run -d PE1 -d P5
  netsurvey run --report-dir /tmp/survey --timeout 60s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := expandNames(runDevices)
		inv, err := prepareInventory(names)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sinks, closeSinks, err := buildSinks(ctx)
		if err != nil {
			return err
		}
		defer closeSinks()

		runner := &discovery.Runner{
			Inventory: inv,
			Sinks:     sinks,
			RunID:     uuid.New().String(),
		}

		jrnl, err := journal.Create(userSettings.GetJournal(), journal.Rotation{
			MaxSize: 10 * 1024 * 1024, // 10MB
			Keep:    5,
		})
		if err != nil {
			util.Warnf("Could not open run journal: %v", err)
		} else {
			runner.Journal = jrnl
			defer jrnl.Close()
		}

		util.WithRun(runner.RunID).Infof("Surveying %d device(s)", countTargets(inv, names))
		sum, err := runner.Run(ctx, names)
		printSummary(sum)
		if err != nil {
			return err
		}
		if len(sum.Failed) > 0 {
			return fmt.Errorf("%d device(s) failed", len(sum.Failed))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringArrayVarP(&runDevices, "device", "d", nil, "Device to survey (repeatable or comma-separated; default all)")
	runCmd.Flags().StringVar(&runReportDir, "report-dir", "", "Report directory")
	runCmd.Flags().StringVar(&runRedisAddr, "redis", "", "Also store reports in Redis at this address")
	runCmd.Flags().IntVar(&runRedisDB, "redis-db", 0, "Redis database number")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Override the per-session timeout")
}

// prepareInventory loads the inventory, applies the timeout override and
// prompts for a password the selected devices lack.
func prepareInventory(names []string) (*inventory.Inventory, error) {
	inv, err := loadInventory()
	if err != nil {
		return nil, err
	}
	if runTimeout > 0 {
		inv.OverrideTimeout(runTimeout)
	}
	if err := fillPasswords(inv, names, terminalPassword); err != nil {
		return nil, err
	}
	return inv, nil
}

// buildSinks returns the file sink plus the Redis sink when configured.
func buildSinks(ctx context.Context) ([]discovery.Sink, func(), error) {
	dir := runReportDir
	if dir == "" {
		dir = userSettings.GetReportDir()
	}
	sinks := []discovery.Sink{report.NewFileSink(dir)}
	closer := func() {}

	if addr := redisAddr(); addr != "" {
		rs := report.NewRedisSink(addr, runRedisDB)
		if err := rs.Connect(ctx); err != nil {
			rs.Close()
			return nil, nil, fmt.Errorf("connecting to Redis at %s: %w", addr, err)
		}
		sinks = append(sinks, rs)
		closer = func() { rs.Close() }
	}
	return sinks, closer, nil
}

// redisAddr is the --redis flag, falling back to the redis_addr setting.
func redisAddr() string {
	if runRedisAddr != "" {
		return runRedisAddr
	}
	return userSettings.RedisAddr
}

// expandNames flattens repeated and comma-separated -d values.
func expandNames(values []string) []string {
	var names []string
	for _, v := range values {
		names = append(names, util.SplitCommaSeparated(v)...)
	}
	return names
}

func countTargets(inv *inventory.Inventory, names []string) int {
	if len(names) > 0 {
		return len(names)
	}
	return len(inv.Devices)
}

func printSummary(sum *discovery.Summary) {
	if sum == nil {
		return
	}
	for _, name := range sum.Succeeded {
		fmt.Printf("%s %s\n", cli.DotPad(name, 24), cli.Outcome(true, len(sum.Degraded[name])))
	}
	failed := make([]string, 0, len(sum.Failed))
	for name := range sum.Failed {
		failed = append(failed, name)
	}
	sort.Strings(failed)
	for _, name := range failed {
		fmt.Printf("%s %s  %v\n", cli.DotPad(name, 24), cli.Outcome(false, 0), sum.Failed[name])
	}
	fmt.Println(sum.String())
}
