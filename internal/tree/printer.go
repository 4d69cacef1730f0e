package tree

import (
	"fmt"
	"io"
	"strings"
)

// Print renders a tree to w, one line per node, depth-first pre-order.
// Branch corner glyphs distinguish a node's last child from earlier
// siblings, so sibling structure survives in the flat rendering.
//
// The printer is purely observational: interpretation never consults it,
// and its output is stable for golden-file comparison.
func Print(w io.Writer, root Node) {
	printNode(w, root, "", true)
}

// Sprint renders a tree to a string.
func Sprint(root Node) string {
	var b strings.Builder
	Print(&b, root)
	return b.String()
}

func printNode(w io.Writer, n Node, prefix string, last bool) {
	branch := "├── "
	childPrefix := prefix + "│   "
	if last {
		branch = "└── "
		childPrefix = prefix + "    "
	}

	switch v := n.(type) {
	case *Leaf:
		result := "no"
		if v.Satisfied {
			result = "yes"
		}
		fmt.Fprintf(w, "%s%s[RESULT] (parent_met=%t) | constraint: %s\n",
			prefix, branch, v.ParentOk, result)
	case *Constraint:
		tag := "[UNCOND]"
		if v.Conditional {
			tag = "[COND]"
		}
		fmt.Fprintf(w, "%s%s%s (parent_met=%t) | category: %s | scope: %s | constraint: %s | source: %s\n",
			prefix, branch, tag, v.ParentOk, v.Category, v.Scope, v.Text, v.Source)
		printNode(w, v.Pass, childPrefix, false)
		printNode(w, v.Fail, childPrefix, true)
	}
}
