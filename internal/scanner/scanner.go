package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lumipallolabs/dirtree/internal/model"
)

// ErrUnknownDiskUsage is returned by ParseDiskUsage for an unrecognized mode
var ErrUnknownDiskUsage = errors.New("unknown disk usage mode")

// DiskUsage selects how file sizes are measured
type DiskUsage int

const (
	// DiskUsageLogical reports the apparent length of each file
	DiskUsageLogical DiskUsage = iota
	// DiskUsagePhysical reports allocated blocks, counting hard links once
	DiskUsagePhysical
)

// String returns the option name of the mode
func (u DiskUsage) String() string {
	if u == DiskUsagePhysical {
		return "physical"
	}
	return "logical"
}

// ParseDiskUsage maps an option name to a DiskUsage. An empty string means logical.
func ParseDiskUsage(s string) (DiskUsage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "logical":
		return DiskUsageLogical, nil
	case "physical":
		return DiskUsagePhysical, nil
	}
	return DiskUsageLogical, fmt.Errorf("%w %q (want logical or physical)", ErrUnknownDiskUsage, s)
}

// Progress reports scanning progress
type Progress struct {
	FilesScanned int64
	DirsScanned  int64
	BytesFound   int64
}

// Scanner defines the interface for filesystem scanning
type Scanner interface {
	// Scan scans the given root path and returns a tree of nodes
	Scan(ctx context.Context, root string) (*model.Node, error)

	// Progress returns a snapshot of the counters of the running or last scan
	Progress() Progress
}
