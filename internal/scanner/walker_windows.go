//go:build windows

package scanner

import (
	"io/fs"
	"sync"
)

// platformRootInfo holds platform-specific root information
type platformRootInfo struct {
	// Windows doesn't need mount point detection - drives are separate
}

// getPlatformRootInfo returns platform-specific info about the root path
func getPlatformRootInfo(path string) platformRootInfo {
	return platformRootInfo{}
}

// shouldSkipDir returns true if the directory should be skipped
func shouldSkipDir(path string, rootInfo platformRootInfo, seenItems *sync.Map) bool {
	return false
}

// physicalSize falls back to the apparent size
func physicalSize(path string, info fs.FileInfo, seenItems *sync.Map) int64 {
	return info.Size()
}
