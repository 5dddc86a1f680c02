package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/newtron-network/netsurvey/pkg/discovery"
	"github.com/newtron-network/netsurvey/pkg/doc"
)

type resolver map[string]string

func (r resolver) LookupIdentifier(id string) (string, bool) {
	name, ok := r[id]
	return name, ok
}

func sampleReport() *discovery.Report {
	nbrs := discovery.NewBGPNeighbors()
	nbrs.Put(discovery.BGPNeighbor{Address: "10.0.0.1", AcceptedPrefixes: "3", Internal: true})
	nbrs.Put(discovery.BGPNeighbor{Address: "10.0.0.2", AcceptedPrefixes: "0"})
	internal, external := nbrs.Partition()

	core := discovery.NewCoreAdjacency()
	core.Add("5.5.5.5", "Gi0/0/0/1")
	core.Add("9.9.9.9", "Gi0/0/0/2")

	bundles := discovery.NewBundleMembership()
	bundles.Set("Bundle-Ether1", []string{"Gi0/0/0/4", "Gi0/0/0/5"})

	return &discovery.Report{
		Device:      "PE1",
		RunID:       "run-1",
		CollectedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		ASN:         "65000",
		Neighbors:   nbrs,
		Internal:    internal,
		External:    external,
		OSPF:        discovery.OSPFProcesses{DefaultVRF: []string{"1"}, NonDefaultVRF: []string{}},
		Bundles:     bundles,
		Core:        core,
		Hostnames:   discovery.ResolveHostnames(core, resolver{"5.5.5.5": "P5"}),
		Linecards: discovery.Linecards{Slots: doc.New(map[string]interface{}{
			"slot-name": "RP0",
			"state":     map[string]interface{}{"card-type": "R-IOSXRV9000-RP-C"},
		})},
	}
}

func TestText_Sections(t *testing.T) {
	text, err := Text(sampleReport())
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	order := []string{SectionBGP, SectionOSPF, SectionInterfaces, SectionLinecards}
	last := -1
	for _, title := range order {
		idx := strings.Index(text, "+++++++++ "+title)
		if idx < 0 {
			t.Fatalf("section %s missing:\n%s", title, text)
		}
		if idx < last {
			t.Errorf("section %s out of order", title)
		}
		last = idx
	}
	if n := strings.Count(text, divider); n != len(order) {
		t.Errorf("found %d dividers, want %d", n, len(order))
	}

	for _, want := range []string{
		"Device: PE1",
		"Collected: 2026-10-18T12:00:00Z",
		"BGP_ASN: 65000",
		"Internal BGP Neighbors: 10.0.0.1",
		"External BGP Neighbors: 10.0.0.2",
		"OSPF_GLOBAL: 1",
		"OSPF_VRF: -",
		"Gi0/0/0/4, Gi0/0/0/5",
		"card-type: R-IOSXRV9000-RP-C",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}

	var p5, unknown bool
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "5.5.5.5" && fields[1] == "P5" {
			p5 = true
		}
		if len(fields) == 3 && fields[0] == "9.9.9.9" && fields[1] == discovery.UnknownHost {
			unknown = true
		}
	}
	if !p5 || !unknown {
		t.Errorf("core table rows not rendered with hostnames:\n%s", text)
	}
}

func TestText_DegradedAndEmpty(t *testing.T) {
	rep := sampleReport()
	rep.Core = nil
	rep.Hostnames = nil
	rep.Bundles = discovery.NewBundleMembership()
	rep.Neighbors = discovery.NewBGPNeighbors()
	rep.Internal, rep.External = rep.Neighbors.Partition()
	rep.Linecards = discovery.Linecards{}

	text, err := Text(rep)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if strings.Count(text, unavailable) != 1 {
		t.Errorf("want one unavailable section:\n%s", text)
	}
	if !strings.Contains(text, "Internal BGP Neighbors: -") {
		t.Errorf("empty partition not rendered as dash:\n%s", text)
	}
	if strings.Contains(text, "NEIGHBOR  TYPE") {
		t.Errorf("empty neighbor table should print no header:\n%s", text)
	}
}

func TestText_MultiSlotLinecards(t *testing.T) {
	rep := sampleReport()
	rep.Linecards = discovery.Linecards{Slots: doc.New([]interface{}{
		map[string]interface{}{"slot-name": "0"},
		map[string]interface{}{"slot-name": "RP0"},
	})}
	text, err := Text(rep)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if !strings.Contains(text, "- slot-name: \"0\"") || !strings.Contains(text, "- slot-name: RP0") {
		t.Errorf("linecards not rendered as a list:\n%s", text)
	}
}

func TestText_EmptySlotElement(t *testing.T) {
	root, err := doc.Parse([]byte(`<data><platform><racks><rack><slots><slot/></slots></rack></racks></platform></data>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	slots, err := root.Get("data", "platform", "racks", "rack", "slots", "slot")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if slots.Kind() != doc.Leaf {
		t.Fatalf("empty slot Kind() = %v, want leaf", slots.Kind())
	}

	rep := sampleReport()
	rep.Linecards = discovery.Linecards{Slots: slots}
	text, err := Text(rep)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	section := text[strings.Index(text, SectionLinecards):]
	if !strings.Contains(section, "\n"+none+"\n") {
		t.Errorf("empty slot not rendered as %q:\n%s", none, text)
	}

	if _, err := Fields(rep); err != nil {
		t.Errorf("Fields() error = %v", err)
	}
	if err := NewFileSink(t.TempDir()).Write(context.Background(), rep); err != nil {
		t.Errorf("FileSink.Write() error = %v", err)
	}
}

func TestFileSink_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	sink := NewFileSink(dir)
	rep := sampleReport()

	if err := sink.Write(context.Background(), rep); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	path := filepath.Join(dir, "DUT_PE1.txt")
	if sink.Path("PE1") != path {
		t.Errorf("Path() = %q, want %q", sink.Path("PE1"), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	want, _ := Text(rep)
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file content mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestFileSink_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := filepath.Join(t.TempDir(), "reports")
	if err := NewFileSink(dir).Write(ctx, sampleReport()); err == nil {
		t.Fatal("Write() should fail on a canceled context")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("nothing should be written on a canceled context")
	}
}

func TestFields(t *testing.T) {
	fields, err := Fields(sampleReport())
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}

	for key, want := range map[string]string{
		"device":       "PE1",
		"run_id":       "run-1",
		"asn":          "65000",
		"internal":     "10.0.0.1",
		"external":     "10.0.0.2",
		"ospf_global":  "1",
		"ospf_vrf":     "",
		"collected_at": "2026-10-18T12:00:00Z",
	} {
		if fields[key] != want {
			t.Errorf("fields[%q] = %v, want %q", key, fields[key], want)
		}
	}

	var hostnames map[string]string
	if err := json.Unmarshal([]byte(fields["hostnames"].(string)), &hostnames); err != nil {
		t.Fatalf("hostnames not JSON: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"5.5.5.5": "P5", "9.9.9.9": "unknown"}, hostnames); diff != "" {
		t.Errorf("hostnames mismatch (-want +got):\n%s", diff)
	}

	var neighbors []discovery.BGPNeighbor
	if err := json.Unmarshal([]byte(fields["neighbors"].(string)), &neighbors); err != nil {
		t.Fatalf("neighbors not JSON: %v", err)
	}
	if len(neighbors) != 2 || neighbors[0].Address != "10.0.0.1" {
		t.Errorf("neighbors = %+v", neighbors)
	}
}

func TestFields_Degraded(t *testing.T) {
	rep := sampleReport()
	rep.Core, rep.Hostnames, rep.Bundles = nil, nil, nil

	fields, err := Fields(rep)
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}
	for _, key := range []string{"core", "hostnames", "bundles"} {
		if fields[key] != degradedField {
			t.Errorf("fields[%q] = %v, want %q", key, fields[key], degradedField)
		}
	}
}

func TestKey(t *testing.T) {
	if got := Key("P5"); got != "NETSURVEY|P5" {
		t.Errorf("Key() = %q", got)
	}
}
