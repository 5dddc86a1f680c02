package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/newtron-network/netsurvey/pkg/discovery"
	"github.com/newtron-network/netsurvey/pkg/util"
)

// FileSink writes one text report per device into Dir.
type FileSink struct {
	Dir string
}

// NewFileSink returns a sink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

func (s *FileSink) Name() string { return "file" }

// Path returns the report file for device.
func (s *FileSink) Path(device string) string {
	return filepath.Join(s.Dir, "DUT_"+device+".txt")
}

// Write renders rep and replaces the device's report file. The file is
// written next to its destination and renamed into place.
func (s *FileSink) Write(ctx context.Context, rep *discovery.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text, err := Text(rep)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	path := s.Path(rep.Device)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing report: %w", err)
	}

	util.WithDevice(rep.Device).WithField("path", path).Debug("Report written")
	return nil
}
