package discovery

import "github.com/newtron-network/netsurvey/pkg/doc"

var bundlePath = []string{"data", "bundles", "bundles", "bundle"}

// extractBundleMembership reads member interfaces per bundle. Both the bundle
// list and each list under members are repeatable, so each is normalized on
// its own.
func extractBundleMembership(root doc.Node) (*BundleMembership, error) {
	node, err := root.Get(bundlePath...)
	if err != nil {
		return nil, err
	}
	bundles, err := doc.Normalize(node)
	if err != nil {
		return nil, err
	}

	out := NewBundleMembership()
	for _, bundle := range bundles {
		name, err := bundle.Text("bundle-interface")
		if err != nil {
			return nil, err
		}
		members, err := bundle.Get("members")
		if err != nil {
			return nil, err
		}

		// Keys are sorted tags, so member order follows the member list alone;
		// IOS-XR puts no other element under members.
		list := []string{}
		for _, key := range members.Keys() {
			group, err := members.Get(key)
			if err != nil {
				return nil, err
			}
			items, err := doc.Normalize(group)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				iface, err := item.Text("member-interface")
				if err != nil {
					return nil, err
				}
				list = append(list, iface)
			}
		}
		out.Set(name, list)
	}
	return out, nil
}
