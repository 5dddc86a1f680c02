package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/newtron-network/netsurvey/pkg/discovery"
	"github.com/newtron-network/netsurvey/pkg/report"
)

var (
	showDevice    string
	showFromRedis bool
)

// reportStore is the read side of the Redis sink.
type reportStore interface {
	Read(ctx context.Context, device string) (map[string]string, error)
	Devices(ctx context.Context) ([]string, error)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Survey one device and print its report",
	Long: `Collect one device and print the report to stdout without writing it
to any sink or the run journal.

With --from-redis the device is not contacted; the report stored by the
last run is printed instead. Without -d, --from-redis lists the devices
that have a stored report.

Examples:
  netsurvey show -d PE1
  netsurvey show -d PE1 --from-redis
  netsurvey show --from-redis --redis 127.0.0.1:6379`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if showFromRedis {
			addr := redisAddr()
			if addr == "" {
				return fmt.Errorf("no Redis address: use --redis or 'netsurvey settings set redis_addr <addr>'")
			}
			rs := report.NewRedisSink(addr, runRedisDB)
			defer rs.Close()
			if err := rs.Connect(ctx); err != nil {
				return fmt.Errorf("connecting to Redis at %s: %w", addr, err)
			}
			return printStored(ctx, rs, showDevice, cmd.OutOrStdout())
		}

		if showDevice == "" {
			return fmt.Errorf("device required: use -d <device>")
		}
		inv, err := prepareInventory([]string{showDevice})
		if err != nil {
			return err
		}

		runner := &discovery.Runner{Inventory: inv, RunID: uuid.New().String()}
		rep, err := runner.Collect(ctx, showDevice)
		if err != nil {
			return err
		}
		return report.Render(cmd.OutOrStdout(), rep)
	},
}

// printStored writes the stored report text for device, or the list of stored
// devices when device is empty.
func printStored(ctx context.Context, store reportStore, device string, w io.Writer) error {
	if device == "" {
		devices, err := store.Devices(ctx)
		if err != nil {
			return fmt.Errorf("listing stored reports: %w", err)
		}
		if len(devices) == 0 {
			fmt.Fprintln(w, "No stored reports")
			return nil
		}
		for _, d := range devices {
			fmt.Fprintln(w, d)
		}
		return nil
	}

	fields, err := store.Read(ctx, device)
	if err != nil {
		return err
	}
	text, ok := fields[report.ReportField]
	if !ok {
		return fmt.Errorf("stored entry %s has no %s field", report.Key(device), report.ReportField)
	}
	_, err = io.WriteString(w, text)
	return err
}

func init() {
	showCmd.Flags().StringVarP(&showDevice, "device", "d", "", "Device to survey")
	showCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Override the per-session timeout")
	showCmd.Flags().BoolVar(&showFromRedis, "from-redis", false, "Print the report stored in Redis instead of surveying")
	showCmd.Flags().StringVar(&runRedisAddr, "redis", "", "Redis address (default: redis_addr setting)")
	showCmd.Flags().IntVar(&runRedisDB, "redis-db", 0, "Redis database number")
}
