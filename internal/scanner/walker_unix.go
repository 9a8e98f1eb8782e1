//go:build !windows

package scanner

import (
	"io/fs"
	"sync"

	"golang.org/x/sys/unix"
)

// platformRootInfo holds platform-specific root information
type platformRootInfo struct {
	dev uint64
}

// inodeKey identifies a file across the whole walk
type inodeKey struct {
	dev uint64
	ino uint64
}

// getPlatformRootInfo returns platform-specific info about the root path
func getPlatformRootInfo(path string) platformRootInfo {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return platformRootInfo{}
	}
	return platformRootInfo{dev: uint64(stat.Dev)}
}

// shouldSkipDir returns true if the directory lives on another filesystem
// or was already reached through a firmlink
func shouldSkipDir(path string, rootInfo platformRootInfo, seenItems *sync.Map) bool {
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return false
	}

	if uint64(stat.Dev) != rootInfo.dev {
		return true
	}

	key := inodeKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}
	_, exists := seenItems.LoadOrStore(key, true)
	return exists
}

// physicalSize returns the allocated size of a file, or -1 if the file
// is a hard link that was already counted
func physicalSize(path string, info fs.FileInfo, seenItems *sync.Map) int64 {
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return info.Size()
	}

	if uint64(stat.Nlink) > 1 {
		key := inodeKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}
		if _, exists := seenItems.LoadOrStore(key, true); exists {
			return -1
		}
	}

	// Blocks is in 512-byte units, which handles sparse files
	return int64(stat.Blocks) * 512
}
