package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/newtron-network/netsurvey/pkg/util"
)

// Reader queries a journal and its rotated backups without modifying them.
type Reader struct {
	path string
}

// Open returns a reader for the journal at path. Nothing is touched on disk;
// a missing journal reads as empty.
func Open(path string) *Reader {
	return &Reader{path: path}
}

// Query returns matching events oldest first across the backups and the live
// file. A Limit keeps the newest matches.
func (r *Reader) Query(filter Filter) ([]*Event, error) {
	olds, err := backups(r.path)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(olds)+1)
	for _, b := range olds {
		files = append(files, b.path)
	}
	files = append(files, r.path)

	events := []*Event{}
	for _, path := range files {
		if events, err = scanFile(path, filter, events); err != nil {
			return nil, err
		}
	}
	if filter.Limit > 0 && filter.Limit < len(events) {
		events = events[len(events)-filter.Limit:]
	}
	return events, nil
}

func scanFile(path string, filter Filter, events []*Event) ([]*Event, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return events, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			util.Warnf("journal: skipping malformed entry %s:%d: %v", filepath.Base(path), line, err)
			continue
		}
		if filter.matches(&e) {
			events = append(events, &e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return events, nil
}

type backup struct {
	path  string
	index int
}

func backupPath(path string, index int) string {
	return path + "." + strconv.Itoa(index)
}

// backups lists numbered rotations of path, oldest (highest index) first.
func backups(path string) ([]backup, error) {
	matches, err := filepath.Glob(path + ".*")
	if err != nil {
		return nil, err
	}
	var out []backup
	for _, m := range matches {
		n, err := strconv.Atoi(strings.TrimPrefix(m, path+"."))
		if err != nil || n < 1 {
			continue
		}
		out = append(out, backup{path: m, index: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index > out[j].index })
	return out, nil
}
