package inject

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/stylist/cssom"
	"github.com/npillmayer/stylist/cssom/douceuradapter"
	"github.com/npillmayer/stylist/registry"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleAttr is the attribute holding the class name of a mounted style.
const StyleAttr = "data-style"

// ErrNoDocument is returned for HTML trees without an <html> element.
var ErrNoDocument = errors.New("inject: tree has no <html> element")

// ErrUnsafeStyle is returned for CSS which would close its <style> element.
var ErrUnsafeStyle = errors.New("inject: CSS contains a closing style tag")

var (
	headSelector  = cascadia.MustCompile("head")
	htmlSelector  = cascadia.MustCompile("html")
	mountedStyles = cascadia.MustCompile("style[" + StyleAttr + "]")
)

// Document is an HTML document styles may be mounted to. It is safe for
// concurrent use.
type Document struct {
	mx   sync.Mutex
	root *html.Node
	head *html.Node
}

var _ registry.Sink = &Document{}

// NewDocument wraps an HTML parse tree. If the tree has no <head>, one is
// created.
func NewDocument(root *html.Node) (*Document, error) {
	if root == nil {
		return nil, ErrNoDocument
	}
	head := headSelector.MatchFirst(root)
	if head == nil {
		h := htmlSelector.MatchFirst(root)
		if h == nil {
			return nil, ErrNoDocument
		}
		head = &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
		h.InsertBefore(head, h.FirstChild)
		tracer().Debugf("created <head>")
	}
	return &Document{root: root, head: head}, nil
}

// Parse reads an HTML document and wraps it.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(root)
}

// Mount appends a <style> element for className to the document's head.
// Mounting a class name twice replaces the CSS of the existing element.
//
// <style> is a raw text element, its content is rendered unescaped. CSS
// containing "</style" is therefore refused with ErrUnsafeStyle.
func (d *Document) Mount(className string, css string) error {
	if strings.Contains(strings.ToLower(css), "</style") {
		tracer().Errorf("refusing to mount style %s", className)
		return fmt.Errorf("%w: %s", ErrUnsafeStyle, className)
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	text := &html.Node{Type: html.TextNode, Data: css}
	if el := d.find(className); el != nil {
		for el.FirstChild != nil {
			el.RemoveChild(el.FirstChild)
		}
		el.AppendChild(text)
		tracer().Debugf("re-mounted style %s", className)
		return nil
	}
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     "style",
		DataAtom: atom.Style,
		Attr:     []html.Attribute{{Key: StyleAttr, Val: className}},
	}
	el.AppendChild(text)
	d.head.AppendChild(el)
	tracer().Debugf("mounted style %s", className)
	return nil
}

// Unmount removes the <style> element for className, if present.
func (d *Document) Unmount(className string) {
	d.mx.Lock()
	defer d.mx.Unlock()
	if el := d.find(className); el != nil {
		el.Parent.RemoveChild(el)
		tracer().Debugf("unmounted style %s", className)
	}
}

// Mounted returns the class names of all mounted styles, in document order.
func (d *Document) Mounted() []string {
	d.mx.Lock()
	defer d.mx.Unlock()
	var names []string
	for _, el := range mountedStyles.MatchAll(d.root) {
		names = append(names, attr(el, StyleAttr))
	}
	return names
}

// StyleSheets parses the CSS of all <style> elements of the document,
// mounted or not.
func (d *Document) StyleSheets() ([]cssom.StyleSheet, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	styles, err := douceuradapter.ExtractStyleElements(d.root)
	if err != nil {
		return nil, err
	}
	sheets := make([]cssom.StyleSheet, len(styles))
	for i, s := range styles {
		sheets[i] = s
	}
	return sheets, nil
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	return html.Render(w, d.root)
}

func (d *Document) find(className string) *html.Node {
	for _, el := range mountedStyles.MatchAll(d.root) {
		if attr(el, StyleAttr) == className {
			return el
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
