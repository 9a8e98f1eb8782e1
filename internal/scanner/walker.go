package scanner

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/lumipallolabs/dirtree/internal/logging"
	"github.com/lumipallolabs/dirtree/internal/model"
)

// Options configures a Walker
type Options struct {
	// Workers is the number of parallel directory readers; <1 picks a default
	Workers int
	// DiskUsage selects logical or physical file sizes
	DiskUsage DiskUsage
	// OneFileSystem skips directories on other filesystems than the root
	OneFileSystem bool
}

// Walker implements parallel filesystem scanning
type Walker struct {
	progress Progress // first for 64-bit atomic alignment
	opts     Options
}

// NewWalker creates a new parallel filesystem walker
func NewWalker(opts Options) *Walker {
	if opts.Workers < 1 {
		opts.Workers = 8
	}
	return &Walker{opts: opts}
}

// Progress returns the current counters
func (w *Walker) Progress() Progress {
	return Progress{
		FilesScanned: atomic.LoadInt64(&w.progress.FilesScanned),
		DirsScanned:  atomic.LoadInt64(&w.progress.DirsScanned),
		BytesFound:   atomic.LoadInt64(&w.progress.BytesFound),
	}
}

// nodeEntry is a temporary structure for building the tree
type nodeEntry struct {
	path    string
	name    string
	size    uint64
	hasSize bool
	isDir   bool
}

// Scan scans the filesystem starting at root using fastwalk.
// Children are attached in the order the walk produced them.
func (w *Walker) Scan(ctx context.Context, root string) (*model.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	atomic.StoreInt64(&w.progress.FilesScanned, 0)
	atomic.StoreInt64(&w.progress.DirsScanned, 0)
	atomic.StoreInt64(&w.progress.BytesFound, 0)

	// Get platform-specific root info for mount point detection
	rootInfo := getPlatformRootInfo(absRoot)

	// Use channels for lock-free entry collection
	entryChan := make(chan nodeEntry, 1024)
	var entries []nodeEntry
	var entriesWg sync.WaitGroup

	entriesWg.Add(1)
	go func() {
		defer entriesWg.Done()
		for e := range entryChan {
			entries = append(entries, e)
		}
	}()

	// Track seen inodes for hard link and firmlink deduplication
	var seenItems sync.Map

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: w.opts.Workers,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			logging.Scanner.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			return nil
		}

		// Skip the root itself
		if path == absRoot {
			return nil
		}

		entry := nodeEntry{
			path:  path,
			name:  d.Name(),
			isDir: d.IsDir(),
		}

		switch {
		case d.IsDir():
			if w.opts.OneFileSystem && shouldSkipDir(path, rootInfo, &seenItems) {
				logging.Scanner.Debug("skipping directory on other filesystem", zap.String("path", path))
				return fs.SkipDir
			}
			atomic.AddInt64(&w.progress.DirsScanned, 1)

		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				logging.Scanner.Debug("stat failed", zap.String("path", path), zap.Error(err))
				return nil
			}

			size := info.Size()
			if w.opts.DiskUsage == DiskUsagePhysical {
				size = physicalSize(path, info, &seenItems)
			}

			atomic.AddInt64(&w.progress.FilesScanned, 1)

			// A negative size marks a hard link already counted under another
			// name: list it, but without a size
			if size >= 0 {
				entry.size = uint64(size)
				entry.hasSize = true
				atomic.AddInt64(&w.progress.BytesFound, size)
			}

		default:
			// Symlinks, sockets, devices and pipes carry no size
			atomic.AddInt64(&w.progress.FilesScanned, 1)
		}

		entryChan <- entry
		return nil
	})

	close(entryChan)
	entriesWg.Wait()

	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(walkErr, ctxErr) {
			return nil, ctxErr
		}
		return nil, walkErr
	}

	rootNode := buildTree(absRoot, entries)

	p := w.Progress()
	logging.Scanner.Debug("scan complete",
		zap.String("root", absRoot),
		zap.Int64("files", p.FilesScanned),
		zap.Int64("dirs", p.DirsScanned),
		zap.Int64("bytes", p.BytesFound))

	return rootNode, nil
}

// buildTree constructs the tree structure from flat entries
func buildTree(rootPath string, entries []nodeEntry) *model.Node {
	nodes := make(map[string]*model.Node, len(entries)+1)

	rootNode := &model.Node{
		Path:  rootPath,
		Name:  filepath.Base(rootPath),
		IsDir: true,
	}
	nodes[rootPath] = rootNode

	// First pass: create nodes
	for i := range entries {
		e := &entries[i]
		node := &model.Node{
			Path:  e.path,
			Name:  e.name,
			IsDir: e.isDir,
		}
		if e.hasSize {
			node.Size = model.SizeOf(e.size)
		}
		nodes[e.path] = node
	}

	// Second pass: link parent/child relationships
	for i := range entries {
		e := &entries[i]
		node := nodes[e.path]
		if parent, exists := nodes[filepath.Dir(e.path)]; exists {
			node.Parent = parent
			parent.Children = append(parent.Children, node)
		}
	}

	return rootNode
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
