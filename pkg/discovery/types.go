package discovery

import (
	"github.com/newtron-network/netsurvey/pkg/doc"
)

// ASNumber is the device's BGP autonomous-system number as configured.
type ASNumber string

// BGPNeighbor is one established BGP session.
type BGPNeighbor struct {
	Address          string `json:"address"`
	AcceptedPrefixes string `json:"accepted_prefixes"`
	Internal         bool   `json:"internal"`
}

// BGPNeighbors is keyed by neighbor address. A later entry for an address
// overwrites the earlier one; the address keeps its first-seen position.
type BGPNeighbors struct {
	m orderedMap[BGPNeighbor]
}

// NewBGPNeighbors returns an empty neighbor set.
func NewBGPNeighbors() *BGPNeighbors {
	return &BGPNeighbors{m: newOrderedMap[BGPNeighbor]()}
}

// Put records n under its address.
func (b *BGPNeighbors) Put(n BGPNeighbor) {
	b.m.set(n.Address, n)
}

// Get returns the neighbor with the given address.
func (b *BGPNeighbors) Get(address string) (BGPNeighbor, bool) {
	return b.m.get(address)
}

// Addresses returns neighbor addresses in first-seen order.
func (b *BGPNeighbors) Addresses() []string {
	return b.m.ordered()
}

// Len returns the number of distinct neighbors.
func (b *BGPNeighbors) Len() int {
	return b.m.size()
}

// Partition splits neighbor addresses into internal and external sessions,
// each in first-seen order. Every address lands in exactly one list.
func (b *BGPNeighbors) Partition() (internal, external []string) {
	internal, external = []string{}, []string{}
	for _, addr := range b.m.keys {
		if b.m.values[addr].Internal {
			internal = append(internal, addr)
		} else {
			external = append(external, addr)
		}
	}
	return internal, external
}

// OSPFProcesses splits OSPF process names by routing domain.
type OSPFProcesses struct {
	DefaultVRF    []string `json:"default_vrf"`
	NonDefaultVRF []string `json:"non_default_vrf"`
}

// Linecards is the chassis slot subtree exactly as the device returned it.
// The slot node is NOT normalized: a single-slot chassis yields a mapping and
// a multi-slot chassis a sequence. Callers that iterate slots must pass Slots
// through doc.Normalize first.
type Linecards struct {
	Slots doc.Node
}

// CoreAdjacency maps an LDP neighbor transport address to the local
// interfaces that hear its link hellos, in discovery order. Parallel links to
// one neighbor all appear under the same address.
//
// A nil *CoreAdjacency is the degraded result: the LDP query or its parsing
// failed. It is distinct from an empty, non-nil adjacency.
type CoreAdjacency struct {
	m orderedMap[[]string]
}

// NewCoreAdjacency returns an empty adjacency.
func NewCoreAdjacency() *CoreAdjacency {
	return &CoreAdjacency{m: newOrderedMap[[]string]()}
}

// Add appends iface to the interfaces seen for neighbor.
func (c *CoreAdjacency) Add(neighbor, iface string) {
	ifaces, _ := c.m.get(neighbor)
	c.m.set(neighbor, append(ifaces, iface))
}

// Degraded reports whether this is the degraded sentinel.
func (c *CoreAdjacency) Degraded() bool {
	return c == nil
}

// Neighbors returns neighbor addresses in first-seen order.
func (c *CoreAdjacency) Neighbors() []string {
	if c == nil {
		return nil
	}
	return c.m.ordered()
}

// Interfaces returns the local interfaces for neighbor.
func (c *CoreAdjacency) Interfaces(neighbor string) []string {
	if c == nil {
		return nil
	}
	ifaces, _ := c.m.get(neighbor)
	return ifaces
}

// Len returns the number of distinct neighbors.
func (c *CoreAdjacency) Len() int {
	if c == nil {
		return 0
	}
	return c.m.size()
}

// Map returns a copy of the adjacency as a plain map.
func (c *CoreAdjacency) Map() map[string][]string {
	if c == nil {
		return nil
	}
	return copyListMap(c.m)
}

// BundleMembership maps a bundle interface to its member interfaces.
//
// A nil *BundleMembership is the degraded result.
type BundleMembership struct {
	m orderedMap[[]string]
}

// NewBundleMembership returns an empty membership table.
func NewBundleMembership() *BundleMembership {
	return &BundleMembership{m: newOrderedMap[[]string]()}
}

// Set records the members of a bundle, replacing any earlier entry.
func (b *BundleMembership) Set(bundle string, members []string) {
	b.m.set(bundle, members)
}

// Degraded reports whether this is the degraded sentinel.
func (b *BundleMembership) Degraded() bool {
	return b == nil
}

// Bundles returns bundle names in discovery order.
func (b *BundleMembership) Bundles() []string {
	if b == nil {
		return nil
	}
	return b.m.ordered()
}

// Members returns the member interfaces of bundle.
func (b *BundleMembership) Members(bundle string) []string {
	if b == nil {
		return nil
	}
	members, _ := b.m.get(bundle)
	return members
}

// Len returns the number of bundles.
func (b *BundleMembership) Len() int {
	if b == nil {
		return 0
	}
	return b.m.size()
}

// Map returns a copy of the membership table as a plain map.
func (b *BundleMembership) Map() map[string][]string {
	if b == nil {
		return nil
	}
	return copyListMap(b.m)
}

func copyListMap(m orderedMap[[]string]) map[string][]string {
	out := make(map[string][]string, m.size())
	for _, k := range m.keys {
		out[k] = append([]string(nil), m.values[k]...)
	}
	return out
}
