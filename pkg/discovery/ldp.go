package discovery

import "github.com/newtron-network/netsurvey/pkg/doc"

var linkHelloPath = []string{
	"data", "mpls-ldp", "global", "active", "default-vrf",
	"afs", "af", "discovery", "link-hellos", "link-hello",
}

// extractCoreAdjacency groups LDP link hellos by neighbor transport address.
// A hello without hello-information has no neighbor behind it yet and is
// skipped.
func extractCoreAdjacency(root doc.Node) (*CoreAdjacency, error) {
	node, err := root.Get(linkHelloPath...)
	if err != nil {
		return nil, err
	}
	hellos, err := doc.Normalize(node)
	if err != nil {
		return nil, err
	}

	out := NewCoreAdjacency()
	for _, hello := range hellos {
		info, err := hello.Get("hello-information")
		if err != nil || !info.Populated() {
			continue
		}
		iface, err := hello.Text("interface-name")
		if err != nil {
			return nil, err
		}
		neighbor, err := info.Text("neighbor-transport-address", "ipv4")
		if err != nil {
			return nil, err
		}
		out.Add(neighbor, iface)
	}
	return out, nil
}
