package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/newtron-network/netsurvey/pkg/discovery"
	"github.com/newtron-network/netsurvey/pkg/util"
	"github.com/newtron-network/netsurvey/pkg/version"
)

// KeyPrefix is the table name of report hashes: NETSURVEY|<device>.
const KeyPrefix = "NETSURVEY"

// ReportField holds the rendered text report within a device hash.
const ReportField = "report"

// degradedField is stored in place of a section that fell back to empty.
const degradedField = "degraded"

// RedisSink stores each report as a hash keyed by device.
type RedisSink struct {
	client *redis.Client
}

// NewRedisSink creates a sink for the Redis server at addr.
func NewRedisSink(addr string, db int) *RedisSink {
	return &RedisSink{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

func (s *RedisSink) Name() string { return "redis" }

// Connect tests the connection
func (s *RedisSink) Connect(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the connection
func (s *RedisSink) Close() error {
	return s.client.Close()
}

// Key returns the hash key for device.
func Key(device string) string {
	return fmt.Sprintf("%s|%s", KeyPrefix, device)
}

// Write replaces the device's hash with the fields of rep.
func (s *RedisSink) Write(ctx context.Context, rep *discovery.Report) error {
	fields, err := Fields(rep)
	if err != nil {
		return err
	}
	key := Key(rep.Device)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	util.WithDevice(rep.Device).WithField("key", key).Debug("Report stored")
	return nil
}

// Read returns the stored hash for device.
func (s *RedisSink) Read(ctx context.Context, device string) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, Key(device)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no stored report for %s", util.ErrDeviceNotFound, device)
	}
	return fields, nil
}

// Devices lists devices with a stored report, sorted.
func (s *RedisSink) Devices(ctx context.Context) ([]string, error) {
	keys, err := s.client.Keys(ctx, KeyPrefix+"|*").Result()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, KeyPrefix+"|"))
	}
	sort.Strings(out)
	return out, nil
}

// Fields flattens rep into hash fields. Record sets are JSON-encoded; a
// degraded section is stored as the literal "degraded".
func Fields(rep *discovery.Report) (map[string]interface{}, error) {
	text, err := Text(rep)
	if err != nil {
		return nil, err
	}

	neighbors := []discovery.BGPNeighbor{}
	if rep.Neighbors != nil {
		for _, addr := range rep.Neighbors.Addresses() {
			n, _ := rep.Neighbors.Get(addr)
			neighbors = append(neighbors, n)
		}
	}

	fields := map[string]interface{}{
		"device":       rep.Device,
		"run_id":       rep.RunID,
		"collected_at": rep.CollectedAt.UTC().Format(time.RFC3339),
		"generator":    version.UserAgent(),
		"asn":          string(rep.ASN),
		"internal":     strings.Join(rep.Internal, ","),
		"external":     strings.Join(rep.External, ","),
		"ospf_global":  strings.Join(rep.OSPF.DefaultVRF, ","),
		"ospf_vrf":     strings.Join(rep.OSPF.NonDefaultVRF, ","),
		ReportField:    text,
	}

	encoded := map[string]interface{}{
		"neighbors": neighbors,
		"linecards": rep.Linecards.Slots.Value(),
	}
	if !rep.Bundles.Degraded() {
		encoded["bundles"] = rep.Bundles.Map()
	} else {
		fields["bundles"] = degradedField
	}
	if !rep.Core.Degraded() {
		encoded["core"] = rep.Core.Map()
		encoded["hostnames"] = rep.Hostnames.Map()
	} else {
		fields["core"] = degradedField
		fields["hostnames"] = degradedField
	}

	for name, v := range encoded {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", name, err)
		}
		fields[name] = string(data)
	}
	return fields, nil
}
