package cmdtree

import (
	"strings"
	"text/tabwriter"
)

// Render returns an indented listing of every command in the tree, in
// registration order. With showDebug set, each command's declaration site
// is appended. Rendering is read-only: it never runs a handler, and the
// same tree always produces the same text.
func (t *Tree) Render(showDebug bool) string {
	return RenderNode(t.root, showDebug)
}

// RenderNode renders the subtree rooted at n the same way Tree.Render
// renders a whole tree.
func RenderNode(n *Node, showDebug bool) string {
	if len(n.order) == 0 && n.run == nil {
		return "no commands registered\n"
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	if n.run != nil {
		writeLeafLine(tw, "", n.name, n, showDebug)
	}
	for _, child := range n.order {
		renderInto(tw, child, 0, showDebug)
	}
	tw.Flush()
	return b.String()
}

func renderInto(tw *tabwriter.Writer, n *Node, depth int, showDebug bool) {
	indent := strings.Repeat("  ", depth)
	if n.run != nil {
		writeLeafLine(tw, indent, n.name, n, showDebug)
	} else {
		tw.Write([]byte(indent + n.name + "\n"))
	}
	for _, child := range n.order {
		renderInto(tw, child, depth+1, showDebug)
	}
}

func writeLeafLine(tw *tabwriter.Writer, indent, name string, n *Node, showDebug bool) {
	doc := n.doc
	if doc == "" {
		doc = "no description set"
	}

	cols := []string{indent + strings.TrimSpace(name+" "+n.sig.usage()), doc}
	if n.customArity {
		cols = append(cols, "accepts "+n.policy.String())
	}
	if showDebug {
		cols = append(cols, "defined in "+n.defLoc)
	}
	tw.Write([]byte(strings.Join(cols, "\t") + "\n"))
}
