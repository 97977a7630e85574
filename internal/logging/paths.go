// Package logging provides provisioning output logging infrastructure for
// Warden.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PathManager handles log file path construction and directory management.
type PathManager struct {
	baseDir string
}

// NewPathManager creates a new PathManager with the given base directory.
// The base directory is typically ~/.local/share/warden/logs.
func NewPathManager(baseDir string) *PathManager {
	return &PathManager{baseDir: baseDir}
}

// BaseDir returns the base log directory.
func (p *PathManager) BaseDir() string {
	return p.baseDir
}

// DaemonLogPath returns the path of the daemon's own log file.
// Path format: <baseDir>/warden.log
func (p *PathManager) DaemonLogPath() string {
	return filepath.Join(p.baseDir, "warden.log")
}

// ProvisionLogPath returns the path of a droplet's provisioning log.
// Path format: <baseDir>/provision/droplet-<id>.log
func (p *PathManager) ProvisionLogPath(dropletID int) string {
	return filepath.Join(p.baseDir, "provision", fmt.Sprintf("droplet-%d.log", dropletID))
}

// EnsureProvisionDir creates the provision log directory if it doesn't
// exist. Returns the directory path.
func (p *PathManager) EnsureProvisionDir() (string, error) {
	dir := filepath.Join(p.baseDir, "provision")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create provision log directory: %w", err)
	}
	return dir, nil
}

// OpenProvisionLog opens a fresh provisioning log for a droplet, truncating
// any previous run's output.
func (p *PathManager) OpenProvisionLog(dropletID int) (io.WriteCloser, error) {
	if _, err := p.EnsureProvisionDir(); err != nil {
		return nil, err
	}
	return LogOnlyWriter(p.ProvisionLogPath(dropletID))
}

// LogExists checks if a provisioning log exists for the given droplet.
func (p *PathManager) LogExists(dropletID int) bool {
	_, err := os.Stat(p.ProvisionLogPath(dropletID))
	return err == nil
}

// RemoveProvisionLog removes a droplet's provisioning log if it exists.
func (p *PathManager) RemoveProvisionLog(dropletID int) error {
	if err := os.Remove(p.ProvisionLogPath(dropletID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove provision log: %w", err)
	}
	return nil
}

// ListProvisionLogs returns the droplet IDs that have provisioning logs.
func (p *PathManager) ListProvisionLogs() ([]int, error) {
	dir := filepath.Join(p.baseDir, "provision")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read provision log directory: %w", err)
	}

	var ids []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		name, ok := strings.CutPrefix(name, "droplet-")
		if !ok {
			continue
		}
		name, ok = strings.CutSuffix(name, ".log")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
