package discovery

// UnknownHost marks a neighbor address with no matching inventory identifier.
const UnknownHost = "unknown"

// Resolver finds the inventory device whose identifier equals id.
type Resolver interface {
	LookupIdentifier(id string) (name string, ok bool)
}

// HostnameResolution maps neighbor addresses to device names or UnknownHost.
//
// A nil *HostnameResolution is the degraded result, produced when the
// adjacency it was resolved from was itself degraded.
type HostnameResolution struct {
	m orderedMap[string]
}

// Degraded reports whether this is the degraded sentinel.
func (h *HostnameResolution) Degraded() bool {
	return h == nil
}

// Neighbors returns resolved addresses in adjacency order.
func (h *HostnameResolution) Neighbors() []string {
	if h == nil {
		return nil
	}
	return h.m.ordered()
}

// Name returns the resolved name for a neighbor address.
func (h *HostnameResolution) Name(neighbor string) (string, bool) {
	if h == nil {
		return "", false
	}
	return h.m.get(neighbor)
}

// Map returns a copy of the resolution as a plain map.
func (h *HostnameResolution) Map() map[string]string {
	if h == nil {
		return nil
	}
	out := make(map[string]string, h.m.size())
	for _, k := range h.m.keys {
		out[k] = h.m.values[k]
	}
	return out
}

// ResolveHostnames resolves every neighbor of adj through r. A degraded
// adjacency short-circuits to a degraded resolution.
func ResolveHostnames(adj *CoreAdjacency, r Resolver) *HostnameResolution {
	if adj.Degraded() {
		return nil
	}
	out := &HostnameResolution{m: newOrderedMap[string]()}
	for _, neighbor := range adj.Neighbors() {
		name, ok := r.LookupIdentifier(neighbor)
		if !ok {
			name = UnknownHost
		}
		out.m.set(neighbor, name)
	}
	return out
}
