package ast

import (
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump returns a tree rendering of a sheet, suitable for debugging and for
// test logs:
//
//     Sheet
//     ├── Block []
//     │   └── color: [Literal "red"]
//     └── Rule [Literal "@media " Literal "screen"]
//         └── Block []
//             └── width: [Literal "100px"]
//
func Dump(s Sheet) string {
	printer := tp.NewWithRoot("Sheet")
	for _, c := range s.contents {
		dumpNode(printer, c)
	}
	out := printer.String()
	tracer().Debugf("dumped sheet with %d items", s.Len())
	return out
}

func dumpNode(printer tp.Tree, node interface{}) {
	switch n := node.(type) {
	case Block:
		conds := make([]string, len(n.condition))
		for i, sel := range n.condition {
			conds[i] = dumpFragments(sel.fragments)
		}
		branch := printer.AddBranch(fmt.Sprintf("Block [%s]", strings.Join(conds, ", ")))
		for _, a := range n.attributes {
			branch.AddNode(fmt.Sprintf("%s: %s", a.key, dumpFragments(a.value)))
		}
	case Rule:
		branch := printer.AddBranch(fmt.Sprintf("Rule %s", dumpFragments(n.condition)))
		for _, c := range n.content {
			dumpNode(branch, c)
		}
	case Raw:
		printer.AddNode(fmt.Sprintf("Raw %q", string(n)))
	default:
		panic(fmt.Sprintf("ast: unknown node type %T", node))
	}
}

func dumpFragments(frags []StringFragment) string {
	parts := make([]string, len(frags))
	for i, f := range frags {
		parts[i] = fmt.Sprintf("%s %q", f.kind, f.text)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
