package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/stylist/ast"
)

// Context holds the parameters for rendering a sheet.
type Context struct {
	ClassName string            // scoping class, without a leading '.'; may be empty
	Bindings  map[string]string // values for placeholders
	Minify    bool              // omit insignificant whitespace
}

// Sheet renders a sheet as CSS to w. Placeholders are resolved with
// ctx.Bindings first; see Resolve.
func Sheet(w io.Writer, sheet ast.Sheet, ctx Context) error {
	resolved, err := Resolve(sheet, ctx.Bindings)
	if err != nil {
		return err
	}
	cw := &cssWriter{w: w, ctx: ctx}
	if ctx.Minify {
		cw.sep, cw.colon = ",", ":"
	} else {
		cw.sep, cw.colon = ", ", ": "
	}
	for _, c := range resolved.Contents() {
		cw.content(c, 0)
	}
	if cw.err == nil {
		tracer().Debugf("rendered %d items for class %q", resolved.Len(), ctx.ClassName)
	}
	return cw.err
}

// String renders a sheet as CSS and returns the result as a string.
func String(sheet ast.Sheet, ctx Context) (string, error) {
	var sb strings.Builder
	if err := Sheet(&sb, sheet, ctx); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// --- CSS writer ------------------------------------------------------------

// cssWriter writes CSS for resolved nodes. The first write error sticks and
// turns all further writes into no-ops.
type cssWriter struct {
	w     io.Writer
	ctx   Context
	sep   string // between selectors
	colon string // between key and value
	err   error
}

func (cw *cssWriter) write(s ...string) {
	for _, x := range s {
		if cw.err != nil {
			return
		}
		_, cw.err = io.WriteString(cw.w, x)
	}
}

func (cw *cssWriter) line(depth int, s ...string) {
	if !cw.ctx.Minify {
		cw.write(strings.Repeat("    ", depth))
	}
	cw.write(s...)
	if !cw.ctx.Minify {
		cw.write("\n")
	}
}

func (cw *cssWriter) open(depth int, head string) {
	if cw.ctx.Minify {
		cw.write(head, "{")
		return
	}
	cw.line(depth, head, " {")
}

func (cw *cssWriter) close(depth int) {
	cw.line(depth, "}")
}

func (cw *cssWriter) content(c interface{}, depth int) {
	switch x := c.(type) {
	case ast.Block:
		cw.block(x, depth)
	case ast.Rule:
		cw.rule(x, depth)
	default:
		panic(fmt.Sprintf("render: unexpected node %T", c))
	}
}

func (cw *cssWriter) declarations(attrs []ast.StyleAttribute, depth int) {
	for _, a := range attrs {
		cw.line(depth, a.Key(), cw.colon, ast.Fragments(a.Value()), ";")
	}
}

func (cw *cssWriter) block(b ast.Block, depth int) {
	var selectors []string
	if b.IsDangling() {
		if cw.ctx.ClassName == "" {
			cw.declarations(b.Attributes(), depth)
			return
		}
		selectors = []string{"." + cw.ctx.ClassName}
	} else {
		for _, sel := range b.Condition() {
			selectors = append(selectors, scoped(sel.String(), cw.ctx.ClassName))
		}
	}
	cw.open(depth, strings.Join(selectors, cw.sep))
	cw.declarations(b.Attributes(), depth+1)
	cw.close(depth)
}

// rule writes an at-rule. Raw pieces of opaque rules are written unchanged,
// a run of them on a single line.
func (cw *cssWriter) rule(r ast.Rule, depth int) {
	cw.open(depth, ast.Fragments(r.Condition()))
	var raw []string
	flush := func() {
		if len(raw) > 0 {
			cw.line(depth+1, strings.Join(raw, " "))
			raw = raw[:0]
		}
	}
	for _, c := range r.Content() {
		if piece, ok := c.(ast.Raw); ok {
			raw = append(raw, string(piece))
			continue
		}
		flush()
		cw.content(c, depth+1)
	}
	flush()
	cw.close(depth)
}

// scoped attaches a selector to a scoping class. Every '&' outside of quoted
// strings is replaced by the class selector. Selectors without '&' become
// descendants of the class.
func scoped(sel string, class string) string {
	if class == "" {
		return sel
	}
	class = "." + class
	var sb strings.Builder
	found := false
	var quote byte
	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(sel) {
				sb.WriteByte(c)
				i++
				c = sel[i]
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '&':
			sb.WriteString(class)
			found = true
			continue
		}
		sb.WriteByte(c)
	}
	if !found {
		return class + " " + sel
	}
	return sb.String()
}
