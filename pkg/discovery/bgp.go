package discovery

import (
	"errors"

	"github.com/newtron-network/netsurvey/pkg/doc"
	"github.com/newtron-network/netsurvey/pkg/util"
)

var (
	asnPath       = []string{"data", "bgp", "instance", "instance-as", "four-byte-as", "as"}
	neighborsPath = []string{"data", "bgp", "instances", "instance", "instance-active", "default-vrf", "neighbors", "neighbor"}
)

func extractASN(root doc.Node) (ASNumber, error) {
	as, err := root.Text(asnPath...)
	if err != nil {
		return "", err
	}
	return ASNumber(as), nil
}

// extractBGPNeighbors reads established neighbors. A reply without the
// neighbors subtree means no session is established.
func extractBGPNeighbors(root doc.Node) (*BGPNeighbors, error) {
	out := NewBGPNeighbors()

	node, err := root.Get(neighborsPath...)
	if errors.Is(err, util.ErrPathNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	neighbors, err := doc.Normalize(node)
	if err != nil {
		return nil, err
	}
	for _, nbr := range neighbors {
		rec, err := readNeighbor(nbr)
		if err != nil {
			return nil, err
		}
		out.Put(rec)
	}
	return out, nil
}

func readNeighbor(nbr doc.Node) (BGPNeighbor, error) {
	addr, err := nbr.Text("neighbor-address")
	if err != nil {
		return BGPNeighbor{}, err
	}
	remoteAS, err := nbr.Text("remote-as")
	if err != nil {
		return BGPNeighbor{}, err
	}
	localAS, err := nbr.Text("local-as")
	if err != nil {
		return BGPNeighbor{}, err
	}

	// af-data is a list keyed by address family; the last family read wins.
	afNode, err := nbr.Get("af-data")
	if err != nil {
		return BGPNeighbor{}, err
	}
	afs, err := doc.Normalize(afNode)
	if err != nil {
		return BGPNeighbor{}, err
	}
	var accepted string
	for _, af := range afs {
		if accepted, err = af.Text("prefixes-accepted"); err != nil {
			return BGPNeighbor{}, err
		}
	}

	return BGPNeighbor{
		Address:          addr,
		AcceptedPrefixes: accepted,
		Internal:         remoteAS == localAS,
	}, nil
}
