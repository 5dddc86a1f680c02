package discovery

import "github.com/newtron-network/netsurvey/pkg/doc"

var slotPath = []string{"data", "platform", "racks", "rack", "slots", "slot"}

func extractLinecards(root doc.Node) (Linecards, error) {
	slots, err := root.Get(slotPath...)
	if err != nil {
		return Linecards{}, err
	}
	return Linecards{Slots: slots}, nil
}
