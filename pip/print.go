// SPDX-License-Identifier: MIT

package pip

import (
	"fmt"
	"io"
	"strings"
)

// indentStep is the indentation of one tree level.
const indentStep = "  "

// Print writes the tree rooted at n in a readable form. names maps
// dimensions to names (missing entries fall back to x<d>); artificial
// parameters are named a<k>. The empty solution prints as "_|_".
//
//	a0 = (n + 1)/2
//	if n - 2*a0 >= 0 then
//	  {i = a0, j = n}
//	else
//	  _|_
func Print(w io.Writer, n Node, names []string) error {
	var sb strings.Builder
	if n == nil {
		sb.WriteString("_|_\n")
	} else {
		pr := &printer{sb: &sb, sp: n.base().sp, user: names}
		pr.node(n, len(ancestorArtificials(n)), "")
	}
	_, err := io.WriteString(w, sb.String())

	return err
}

// Format renders the tree rooted at n as Print does.
func Format(n Node, names []string) string {
	var sb strings.Builder
	_ = Print(&sb, n, names)

	return sb.String()
}

type printer struct {
	sb   *strings.Builder
	sp   *space
	user []string
}

// node prints n; depth is the number of artificial parameters defined
// above it.
func (pr *printer) node(n Node, depth int, indent string) {
	b := n.base()
	for k, a := range b.artificials {
		names := pr.sp.names(pr.user, depth+k)
		fmt.Fprintf(pr.sb, "%sa%d = %s\n", indent, depth+k, a.Format(names))
	}
	depth += len(b.artificials)
	names := pr.sp.names(pr.user, depth)

	inner := indent
	if len(b.constraints) > 0 {
		parts := make([]string, len(b.constraints))
		for i, c := range b.constraints {
			parts[i] = c.Format(names)
		}
		fmt.Fprintf(pr.sb, "%sif %s then\n", indent, strings.Join(parts, " and "))
		inner = indent + indentStep
	}

	var falseChild Node
	switch x := n.(type) {
	case *Solution:
		vals := make([]string, len(x.values))
		for k, e := range x.values {
			vals[k] = names[pr.sp.vars[k]] + " = " + e.Format(names)
		}
		fmt.Fprintf(pr.sb, "%s{%s}\n", inner, strings.Join(vals, ", "))
	case *Decision:
		pr.node(x.trueChild, depth, inner)
		falseChild = x.falseChild
	}

	if len(b.constraints) > 0 {
		fmt.Fprintf(pr.sb, "%selse\n", indent)
		if falseChild != nil {
			pr.node(falseChild, depth, inner)
		} else {
			fmt.Fprintf(pr.sb, "%s_|_\n", inner)
		}
	}
}
