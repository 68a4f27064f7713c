// Package signal publishes the sign's "alert active" side channel. Sibling
// subsystems on the host (other plugins, a dimmer daemon) watch this signal
// to suppress themselves while an alert holds the display. The channel is
// best effort: failures to publish never affect the sign's own behavior.
package signal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Status is the payload of the alert-active signal.
type Status struct {
	Active bool     `json:"active"`
	Tier   int      `json:"tier"`
	Events []string `json:"events"`
}

// Port abstracts where the signal lives so the core never touches a
// filesystem path directly and tests can use an in-memory fake.
type Port interface {
	// Write publishes the status, replacing any previous one.
	Write(status Status) error
	// Read returns the current status and whether one is published.
	Read() (Status, bool, error)
	// Clear removes the signal. Clearing an absent signal is not an error.
	Clear() error
}

// FilePort publishes the signal as a small JSON file, the convention the
// host's other subsystems already watch. Writes go through a temp file and
// rename so readers never observe a partial payload.
type FilePort struct {
	path string
}

// NewFilePort creates a file-backed signal port at the given path.
func NewFilePort(path string) *FilePort {
	return &FilePort{path: path}
}

func (p *FilePort) Write(status Status) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal signal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".signal-*")
	if err != nil {
		return fmt.Errorf("write signal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write signal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write signal: %w", err)
	}
	// World-readable so sibling processes under other users can watch it.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write signal: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write signal: %w", err)
	}
	return nil
}

func (p *FilePort) Read() (Status, bool, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Status{}, false, nil
	}
	if err != nil {
		return Status{}, false, fmt.Errorf("read signal: %w", err)
	}
	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return Status{}, false, fmt.Errorf("decode signal: %w", err)
	}
	return status, true, nil
}

func (p *FilePort) Clear() error {
	err := os.Remove(p.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear signal: %w", err)
	}
	return nil
}

// MemoryPort is an in-memory Port for tests and embedded use.
type MemoryPort struct {
	mu      sync.Mutex
	status  Status
	present bool
}

// NewMemoryPort creates an empty in-memory signal port.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{}
}

func (p *MemoryPort) Write(status Status) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
	p.present = true
	return nil
}

func (p *MemoryPort) Read() (Status, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, p.present, nil
}

func (p *MemoryPort) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = Status{}
	p.present = false
	return nil
}
