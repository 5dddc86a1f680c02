// Package discovery turns NETCONF replies from IOS-XR routers into per-device
// inventory records and cross-references them against the static inventory.
package discovery

import (
	"context"
	"fmt"

	"github.com/newtron-network/netsurvey/pkg/device"
	"github.com/newtron-network/netsurvey/pkg/doc"
	"github.com/newtron-network/netsurvey/pkg/util"
)

// Policy decides what an extractor failure does to the device report.
type Policy int

const (
	// Strict failures abort the device report.
	Strict Policy = iota
	// DegradeToEmpty failures are logged and replaced by the zero record
	// set, which for pointer results is the nil degraded sentinel.
	DegradeToEmpty
)

func (p Policy) String() string {
	if p == DegradeToEmpty {
		return "degrade-to-empty"
	}
	return "strict"
}

// Extractor pairs one fixed subtree filter with the function that reads its
// reply, under an explicit failure policy.
type Extractor[T any] struct {
	Name    string
	Filter  string
	Policy  Policy
	Extract func(root doc.Node) (T, error)
}

// Run queries q and extracts the record set. Under DegradeToEmpty any query,
// parse or extraction failure returns the zero T and a nil error; context
// cancellation is always returned.
func (e Extractor[T]) Run(ctx context.Context, q device.Querier, deviceName string) (T, error) {
	log := util.WithExtractor(deviceName, e.Name)

	out, err := e.fetch(ctx, q)
	if err == nil {
		log.Debug("Extracted")
		return out, nil
	}

	var zero T
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}
	err = &ExtractError{Extractor: e.Name, Err: err}
	if e.Policy == DegradeToEmpty {
		log.WithError(err).Warn("Degraded to empty result")
		return zero, nil
	}
	return zero, err
}

func (e Extractor[T]) fetch(ctx context.Context, q device.Querier) (T, error) {
	var zero T
	raw, err := q.Get(ctx, e.Filter)
	if err != nil {
		return zero, err
	}
	root, err := doc.Parse(raw)
	if err != nil {
		return zero, err
	}
	return e.Extract(root)
}

// ExtractError names the extractor a failure came from.
type ExtractError struct {
	Extractor string
	Err       error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s: %v", e.Extractor, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// The extractor table. Policies here are the whole error contract of a
// device report: a Strict failure aborts it, a DegradeToEmpty failure leaves
// a sentinel in its section.
var (
	ASNExtractor = Extractor[ASNumber]{
		Name:    "bgp-asn",
		Filter:  FilterBGPASN,
		Policy:  Strict,
		Extract: extractASN,
	}
	BGPNeighborsExtractor = Extractor[*BGPNeighbors]{
		Name:    "bgp-neighbors",
		Filter:  FilterBGPNeighbors,
		Policy:  Strict,
		Extract: extractBGPNeighbors,
	}
	OSPFExtractor = Extractor[OSPFProcesses]{
		Name:    "ospf-processes",
		Filter:  FilterOSPFProcesses,
		Policy:  Strict,
		Extract: extractOSPFProcesses,
	}
	LinecardsExtractor = Extractor[Linecards]{
		Name:    "linecards",
		Filter:  FilterLinecards,
		Policy:  Strict,
		Extract: extractLinecards,
	}
	CoreInterfacesExtractor = Extractor[*CoreAdjacency]{
		Name:    "core-interfaces",
		Filter:  FilterLDPLinkHellos,
		Policy:  DegradeToEmpty,
		Extract: extractCoreAdjacency,
	}
	BundlesExtractor = Extractor[*BundleMembership]{
		Name:    "bundle-members",
		Filter:  FilterBundleMembers,
		Policy:  DegradeToEmpty,
		Extract: extractBundleMembership,
	}
)
