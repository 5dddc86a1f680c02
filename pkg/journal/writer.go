package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Recorder accepts device outcomes as a run progresses.
type Recorder interface {
	Record(event *Event) error
}

// Rotation bounds the live journal file. Backups are numbered path.1 (newest)
// through path.Keep (oldest); Keep 0 retains every backup.
type Rotation struct {
	MaxSize int64
	Keep    int
}

// Writer appends events to a JSON-lines file, rotating it by size.
type Writer struct {
	mu       sync.Mutex
	path     string
	f        *os.File
	size     int64
	rotation Rotation
}

// Create opens the journal at path for appending, creating its directory.
func Create(path string, rotation Rotation) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	w := &Writer{path: path, rotation: rotation}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) open() error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("opening journal: %w", err)
	}
	w.f, w.size = f, info.Size()
	return nil
}

// Record appends one event. The file is rotated first when the line would
// push a non-empty file past MaxSize.
func (w *Writer) Record(event *Event) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding journal event: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return fmt.Errorf("journal %s is closed", w.path)
	}
	if w.rotation.MaxSize > 0 && w.size > 0 && w.size+int64(len(line)) > w.rotation.MaxSize {
		if err := w.rotate(); err != nil {
			return fmt.Errorf("rotating journal: %w", err)
		}
	}
	n, err := w.f.Write(line)
	w.size += int64(n)
	return err
}

// Close releases the live file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// rotate shifts path.N to path.N+1, dropping anything past Keep, then moves
// the live file to path.1 and reopens an empty one.
func (w *Writer) rotate() error {
	if err := w.f.Close(); err != nil {
		return err
	}
	w.f = nil

	olds, err := backups(w.path)
	if err != nil {
		return err
	}
	// backups are oldest first, so shifting in order never overwrites.
	for _, b := range olds {
		if w.rotation.Keep > 0 && b.index >= w.rotation.Keep {
			if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
				return err
			}
			continue
		}
		if err := os.Rename(b.path, backupPath(w.path, b.index+1)); err != nil {
			return err
		}
	}
	if err := os.Rename(w.path, backupPath(w.path, 1)); err != nil {
		return err
	}
	return w.open()
}
