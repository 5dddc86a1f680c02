// Package report renders device reports and persists them to the configured
// sinks.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/netsurvey/pkg/cli"
	"github.com/newtron-network/netsurvey/pkg/discovery"
	"github.com/newtron-network/netsurvey/pkg/doc"
	"github.com/newtron-network/netsurvey/pkg/util"
)

// Section titles, in report order.
const (
	SectionBGP        = "BGP CONFIG"
	SectionOSPF       = "OSPF CONFIG"
	SectionInterfaces = "INTERFACES"
	SectionLinecards  = "LINECARDS"
)

// Placeholders for sections without records.
const (
	unavailable = "unavailable (query failed)"
	none        = "none"
)

var divider = strings.Repeat("- ", 40)

// Render writes the text report for rep to w.
func Render(w io.Writer, rep *discovery.Report) error {
	text, err := Text(rep)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// Text renders the report as the sectioned text layout.
func Text(rep *discovery.Report) (string, error) {
	var b bytes.Buffer

	fmt.Fprintf(&b, "Device: %s\n", rep.Device)
	fmt.Fprintf(&b, "Run: %s\n", rep.RunID)
	fmt.Fprintf(&b, "Collected: %s\n", rep.CollectedAt.UTC().Format(time.RFC3339))

	if err := writeBGP(&b, rep); err != nil {
		return "", err
	}
	writeOSPF(&b, rep)
	if err := writeInterfaces(&b, rep); err != nil {
		return "", err
	}
	if err := writeLinecards(&b, rep); err != nil {
		return "", err
	}
	return b.String(), nil
}

func header(b *bytes.Buffer, title string) {
	fmt.Fprintf(b, "\n+++++++++ %s ++++++++++++++++++++\n", title)
}

func footer(b *bytes.Buffer) {
	b.WriteString(divider + "\n")
}

func writeBGP(b *bytes.Buffer, rep *discovery.Report) error {
	header(b, SectionBGP)
	fmt.Fprintf(b, "BGP_ASN: %s\n\n", rep.ASN)

	b.WriteString("BGP Neighbors and Prefixes:\n")
	tbl := cli.NewTableTo(b, "NEIGHBOR", "TYPE", "ACCEPTED").WithPrefix("  ")
	if rep.Neighbors != nil {
		for _, addr := range rep.Neighbors.Addresses() {
			n, _ := rep.Neighbors.Get(addr)
			kind := "external"
			if n.Internal {
				kind = "internal"
			}
			tbl.Row(n.Address, kind, n.AcceptedPrefixes)
		}
	}
	if err := tbl.Flush(); err != nil {
		return err
	}
	if tbl.Len() == 0 {
		fmt.Fprintf(b, "  %s\n", none)
	}

	fmt.Fprintf(b, "\nInternal BGP Neighbors: %s\n", util.JoinOrDash(rep.Internal))
	fmt.Fprintf(b, "External BGP Neighbors: %s\n", util.JoinOrDash(rep.External))
	footer(b)
	return nil
}

func writeOSPF(b *bytes.Buffer, rep *discovery.Report) {
	header(b, SectionOSPF)
	fmt.Fprintf(b, "OSPF_GLOBAL: %s\n", util.JoinOrDash(rep.OSPF.DefaultVRF))
	fmt.Fprintf(b, "OSPF_VRF: %s\n", util.JoinOrDash(rep.OSPF.NonDefaultVRF))
	footer(b)
}

func writeInterfaces(b *bytes.Buffer, rep *discovery.Report) error {
	header(b, SectionInterfaces)

	b.WriteString("Bundle Members:\n")
	if rep.Bundles.Degraded() {
		fmt.Fprintf(b, "  %s\n", unavailable)
	} else {
		tbl := cli.NewTableTo(b, "BUNDLE", "MEMBERS").WithPrefix("  ")
		for _, bundle := range rep.Bundles.Bundles() {
			tbl.Row(bundle, strings.Join(rep.Bundles.Members(bundle), ", "))
		}
		if err := tbl.Flush(); err != nil {
			return err
		}
		if tbl.Len() == 0 {
			fmt.Fprintf(b, "  %s\n", none)
		}
	}

	b.WriteString("\nCore interfaces per neighbor:\n")
	if rep.Core.Degraded() {
		fmt.Fprintf(b, "  %s\n", unavailable)
	} else {
		tbl := cli.NewTableTo(b, "NEIGHBOR", "HOSTNAME", "INTERFACES").WithPrefix("  ")
		for _, neighbor := range rep.Core.Neighbors() {
			name, _ := rep.Hostnames.Name(neighbor)
			tbl.Row(neighbor, name, strings.Join(rep.Core.Interfaces(neighbor), ", "))
		}
		if err := tbl.Flush(); err != nil {
			return err
		}
		if tbl.Len() == 0 {
			fmt.Fprintf(b, "  %s\n", none)
		}
	}
	footer(b)
	return nil
}

func writeLinecards(b *bytes.Buffer, rep *discovery.Report) error {
	header(b, SectionLinecards)
	switch rep.Linecards.Slots.Kind() {
	case doc.Absent:
		fmt.Fprintf(b, "%s\n", none)
		footer(b)
		return nil
	case doc.Leaf:
		// An empty <slot/> decodes as leaf text.
		text, _ := rep.Linecards.Slots.Text()
		if text = strings.TrimSpace(text); text == "" {
			text = none
		}
		fmt.Fprintf(b, "%s\n", text)
		footer(b)
		return nil
	}

	slots, err := doc.Normalize(rep.Linecards.Slots)
	if err != nil {
		return fmt.Errorf("rendering linecards: %w", err)
	}
	values := make([]interface{}, len(slots))
	for i, s := range slots {
		values[i] = s.Value()
	}
	out, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("rendering linecards: %w", err)
	}
	b.Write(out)
	footer(b)
	return nil
}
