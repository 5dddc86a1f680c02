package discovery

import (
	"context"
	"time"

	"github.com/newtron-network/netsurvey/pkg/device"
)

// Report is the consolidated inventory of one device from one run.
type Report struct {
	Device      string
	RunID       string
	CollectedAt time.Time

	ASN       ASNumber
	Neighbors *BGPNeighbors
	Internal  []string
	External  []string

	OSPF OSPFProcesses

	Bundles   *BundleMembership
	Core      *CoreAdjacency
	Hostnames *HostnameResolution

	Linecards Linecards
}

// Collector runs the extractors against one device session.
type Collector struct {
	Resolver Resolver
	RunID    string

	now func() time.Time
}

// NewCollector returns a collector resolving neighbors through r.
func NewCollector(r Resolver, runID string) *Collector {
	return &Collector{Resolver: r, RunID: runID, now: time.Now}
}

// Collect runs every extractor in report order. The first Strict failure
// aborts the report; DegradeToEmpty failures leave nil sections.
func (c *Collector) Collect(ctx context.Context, q device.Querier, name string) (*Report, error) {
	now := c.now
	if now == nil {
		now = time.Now
	}
	rep := &Report{Device: name, RunID: c.RunID, CollectedAt: now()}

	var err error
	if rep.ASN, err = ASNExtractor.Run(ctx, q, name); err != nil {
		return nil, err
	}
	if rep.Neighbors, err = BGPNeighborsExtractor.Run(ctx, q, name); err != nil {
		return nil, err
	}
	rep.Internal, rep.External = rep.Neighbors.Partition()

	if rep.OSPF, err = OSPFExtractor.Run(ctx, q, name); err != nil {
		return nil, err
	}

	if rep.Core, err = CoreInterfacesExtractor.Run(ctx, q, name); err != nil {
		return nil, err
	}
	rep.Hostnames = ResolveHostnames(rep.Core, c.Resolver)
	if rep.Bundles, err = BundlesExtractor.Run(ctx, q, name); err != nil {
		return nil, err
	}

	if rep.Linecards, err = LinecardsExtractor.Run(ctx, q, name); err != nil {
		return nil, err
	}
	return rep, nil
}
