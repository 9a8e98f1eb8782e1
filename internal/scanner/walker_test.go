package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lumipallolabs/dirtree/internal/model"
)

func childByName(node *model.Node, name string) *model.Node {
	for _, c := range node.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestWalkerScan(t *testing.T) {
	tmp := t.TempDir()

	os.MkdirAll(filepath.Join(tmp, "subdir"), 0755)
	os.WriteFile(filepath.Join(tmp, "file1.txt"), []byte("hello"), 0644)
	os.WriteFile(filepath.Join(tmp, "subdir", "file2.txt"), []byte("world!"), 0644)

	w := NewWalker(Options{Workers: 4})
	root, err := w.Scan(context.Background(), tmp)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if !root.IsDir {
		t.Error("root should be a directory")
	}
	if root.Name != filepath.Base(tmp) {
		t.Errorf("expected root name %s, got %s", filepath.Base(tmp), root.Name)
	}

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}

	root.ComputeSizes()

	// Logical sizes are the byte lengths
	if root.EffectiveSize() != 11 {
		t.Errorf("expected total size 11, got %d", root.EffectiveSize())
	}

	subdir := childByName(root, "subdir")
	if subdir == nil || !subdir.IsDir {
		t.Fatal("subdir not found")
	}
	if subdir.Parent != root {
		t.Error("subdir parent not linked")
	}
	if subdir.EffectiveSize() != 6 {
		t.Errorf("expected subdir size 6, got %d", subdir.EffectiveSize())
	}

	p := w.Progress()
	if p.FilesScanned != 2 || p.DirsScanned != 1 || p.BytesFound != 11 {
		t.Errorf("unexpected progress %+v", p)
	}
}

func TestWalkerSymlinkHasNoSize(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "target.txt"), []byte("0123456789"), 0644)
	if err := os.Symlink("target.txt", filepath.Join(tmp, "link")); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}

	root, err := NewWalker(Options{}).Scan(context.Background(), tmp)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	link := childByName(root, "link")
	if link == nil {
		t.Fatal("link not found")
	}
	if link.HasSize() {
		t.Errorf("expected link without size, got %d", *link.Size)
	}

	root.ComputeSizes()
	if root.EffectiveSize() != 10 {
		t.Errorf("expected total size 10, got %d", root.EffectiveSize())
	}
}

func TestWalkerPhysicalSize(t *testing.T) {
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "file.txt"), []byte("hello"), 0644)

	root, err := NewWalker(Options{DiskUsage: DiskUsagePhysical}).Scan(context.Background(), tmp)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	root.ComputeSizes()

	// On Unix: allocated blocks, 0 or a multiple of 512
	// On Windows: logical size
	size := root.EffectiveSize()
	if runtime.GOOS != "windows" && size%512 != 0 {
		t.Errorf("expected a multiple of 512, got %d", size)
	}
	t.Logf("physical size: %d bytes", size)
}

func TestWalkerHardLinkListedOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("physical sizes fall back to logical sizes on Windows")
	}

	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "a.txt"), []byte("hello"), 0644)
	if err := os.Link(filepath.Join(tmp, "a.txt"), filepath.Join(tmp, "b.txt")); err != nil {
		t.Skipf("hard links not supported: %v", err)
	}

	root, err := NewWalker(Options{DiskUsage: DiskUsagePhysical}).Scan(context.Background(), tmp)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if childByName(root, "a.txt") == nil || childByName(root, "b.txt") == nil {
		t.Fatalf("expected both links to be listed, got %d children", len(root.Children))
	}

	sized := 0
	for _, c := range root.Children {
		if c.HasSize() {
			sized++
		}
	}
	if sized != 1 {
		t.Errorf("expected exactly one link with a size, got %d", sized)
	}
}

func TestWalkerProgressResetBetweenScans(t *testing.T) {
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "file.txt"), []byte("hello"), 0644)

	w := NewWalker(Options{})
	for i := 0; i < 2; i++ {
		if _, err := w.Scan(context.Background(), tmp); err != nil {
			t.Fatalf("scan %d failed: %v", i, err)
		}
	}

	p := w.Progress()
	if p.FilesScanned != 1 || p.BytesFound != 5 {
		t.Errorf("expected counters of the last scan only, got %+v", p)
	}
}

func TestWalkerCancelled(t *testing.T) {
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "file.txt"), []byte("hello"), 0644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWalker(Options{}).Scan(ctx, tmp)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParseDiskUsage(t *testing.T) {
	for in, want := range map[string]DiskUsage{
		"":         DiskUsageLogical,
		"logical":  DiskUsageLogical,
		"physical": DiskUsagePhysical,
	} {
		got, err := ParseDiskUsage(in)
		if err != nil || got != want {
			t.Errorf("ParseDiskUsage(%q) = %s, %v", in, got, err)
		}
	}

	if _, err := ParseDiskUsage("apparent"); !errors.Is(err, ErrUnknownDiskUsage) {
		t.Errorf("expected ErrUnknownDiskUsage, got %v", err)
	}
}
