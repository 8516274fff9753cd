package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// HeldError reports a lock owned by a live process
type HeldError struct {
	Path string
	PID  int
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("%s is held by running process %d", e.Path, e.PID)
}

// PIDFile keeps a single sheet watcher per database
type PIDFile struct {
	path string
	held bool
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path is where the lock lives
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current pid. Stale or unreadable files are replaced;
// a file naming a live process yields *HeldError.
func (p *PIDFile) Acquire() error {
	if pid, ok := p.owner(); ok {
		if pid != os.Getpid() && isProcessRunning(pid) {
			return &HeldError{Path: p.path, PID: pid}
		}
	}
	_ = os.Remove(p.path)

	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create lock directory: %w", err)
		}
	}

	// O_EXCL so two watchers racing past the check cannot both win
	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			pid, _ := p.owner()
			return &HeldError{Path: p.path, PID: pid}
		}
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	p.held = true
	return nil
}

// Release removes the file if this process wrote it
func (p *PIDFile) Release() error {
	if !p.held {
		return nil
	}
	p.held = false
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func (p *PIDFile) owner() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// isProcessRunning probes pid with signal 0
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM: alive but owned by someone else
	return errors.Is(err, syscall.EPERM)
}
