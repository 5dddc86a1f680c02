//go:build integration

package report_test

import (
	"testing"

	"github.com/newtron-network/netsurvey/internal/testutil"
	"github.com/newtron-network/netsurvey/pkg/discovery"
	"github.com/newtron-network/netsurvey/pkg/report"
)

func TestRedisSink_WriteRead(t *testing.T) {
	testutil.SkipIfNoRedis(t)
	addr := testutil.RedisAddr()
	testutil.FlushDB(t, addr, testutil.TestDB)

	ctx := testutil.Context(t)
	sink := report.NewRedisSink(addr, testutil.TestDB)
	defer sink.Close()
	if err := sink.Connect(ctx); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	// A stale field from an earlier run must not survive a rewrite.
	testutil.WriteEntry(t, addr, testutil.TestDB, report.KeyPrefix, "PE1", map[string]string{"stale": "x"})

	nbrs := discovery.NewBGPNeighbors()
	nbrs.Put(discovery.BGPNeighbor{Address: "10.0.0.1", AcceptedPrefixes: "3", Internal: true})
	internal, external := nbrs.Partition()
	rep := &discovery.Report{
		Device:    "PE1",
		RunID:     "run-int",
		ASN:       "65000",
		Neighbors: nbrs,
		Internal:  internal,
		External:  external,
		Bundles:   discovery.NewBundleMembership(),
	}

	if err := sink.Write(ctx, rep); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if !testutil.EntryExists(t, addr, testutil.TestDB, report.KeyPrefix, "PE1") {
		t.Fatal("report hash not created")
	}
	stored := testutil.ReadEntry(t, addr, testutil.TestDB, report.KeyPrefix, "PE1")
	if _, ok := stored["stale"]; ok {
		t.Error("stale field survived rewrite")
	}
	if stored["asn"] != "65000" || stored["internal"] != "10.0.0.1" || stored["core"] != "degraded" {
		t.Errorf("stored = %v", stored)
	}

	got, err := sink.Read(ctx, "PE1")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got["run_id"] != "run-int" {
		t.Errorf("run_id = %q", got["run_id"])
	}

	devices, err := sink.Devices(ctx)
	if err != nil {
		t.Fatalf("Devices() error = %v", err)
	}
	if len(devices) != 1 || devices[0] != "PE1" {
		t.Errorf("Devices() = %v, want [PE1]", devices)
	}

	if _, err := sink.Read(ctx, "P9"); err == nil {
		t.Error("Read() of a missing device should fail")
	}
}
