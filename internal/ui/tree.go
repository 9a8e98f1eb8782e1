package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/dirtree/internal/model"
)

// Branch glyphs
const (
	glyphBranch = "├─ "
	glyphLast   = "└─ "
	glyphPipe   = "│  "
	glyphBlank  = "   "
)

// TreeView renders a scanned tree as text
type TreeView struct {
	// Order is applied to every group of siblings before it is printed
	Order model.Order
	// Level limits how deep the tree is printed; 0 means unlimited
	Level int
	// Color enables lipgloss styling when the writer supports it
	Color bool
}

// Render writes root and its descendants to w, one entry per line
func (t TreeView) Render(w io.Writer, root *model.Node) error {
	if root == nil {
		return nil
	}

	var styles *treeStyles
	if t.Color {
		s := newTreeStyles(lipgloss.NewRenderer(w))
		styles = &s
	}

	var b strings.Builder
	b.WriteString(t.label(root, styles))
	b.WriteByte('\n')
	t.writeChildren(&b, root, root.Depth(), "", styles)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeChildren prints the children of node. rootDepth is the Depth of the
// rendered root, so Level counts from the root even for a subtree.
func (t TreeView) writeChildren(b *strings.Builder, node *model.Node, rootDepth int, prefix string, styles *treeStyles) {
	if !node.IsDir || (t.Level > 0 && node.Depth()-rootDepth >= t.Level) {
		return
	}

	// Sort a copy so the scanned tree keeps its enumeration order
	children := t.Order.Sorted(node.Children)

	for i, child := range children {
		branch, indent := glyphBranch, glyphPipe
		if i == len(children)-1 {
			branch, indent = glyphLast, glyphBlank
		}

		b.WriteString(prefix)
		b.WriteString(paint(styles, branchStyle, branch))
		b.WriteString(t.label(child, styles))
		b.WriteByte('\n')

		t.writeChildren(b, child, rootDepth, prefix+paint(styles, branchStyle, indent), styles)
	}
}

// label formats "name (size)"; nodes without a size show the name only
func (t TreeView) label(node *model.Node, styles *treeStyles) string {
	nameStyle := fileStyle
	if node.IsDir {
		nameStyle = dirStyle
	}
	label := paint(styles, nameStyle, node.Name)
	if node.HasSize() {
		label += " " + paint(styles, sizeStyle, "("+FormatSize(*node.Size)+")")
	}
	return label
}

type styleKind int

const (
	fileStyle styleKind = iota
	dirStyle
	sizeStyle
	branchStyle
)

func paint(styles *treeStyles, kind styleKind, s string) string {
	if styles == nil || strings.TrimSpace(s) == "" {
		return s
	}
	switch kind {
	case dirStyle:
		return styles.dir.Render(s)
	case sizeStyle:
		return styles.size.Render(s)
	case branchStyle:
		return styles.branch.Render(s)
	default:
		return styles.file.Render(s)
	}
}
