package discovery

import (
	"errors"

	"github.com/newtron-network/netsurvey/pkg/doc"
	"github.com/newtron-network/netsurvey/pkg/util"
)

var ospfProcessPath = []string{"data", "ospf", "processes", "process"}

// extractOSPFProcesses classifies each process by routing domain: a process
// carrying a vrfs child is scoped to a named VRF.
func extractOSPFProcesses(root doc.Node) (OSPFProcesses, error) {
	out := OSPFProcesses{DefaultVRF: []string{}, NonDefaultVRF: []string{}}

	node, err := root.Get(ospfProcessPath...)
	if errors.Is(err, util.ErrPathNotFound) {
		return out, nil
	}
	if err != nil {
		return OSPFProcesses{}, err
	}

	processes, err := doc.Normalize(node)
	if err != nil {
		return OSPFProcesses{}, err
	}
	for _, proc := range processes {
		name, err := proc.Text("process-name")
		if err != nil {
			return OSPFProcesses{}, err
		}
		if proc.Has("vrfs") {
			out.NonDefaultVRF = append(out.NonDefaultVRF, name)
		} else {
			out.DefaultVRF = append(out.DefaultVRF, name)
		}
	}
	return out, nil
}
