package registry

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/stylist/ast"
	"github.com/npillmayer/stylist/render"
)

// DefaultPrefix is the class name prefix used if none is configured.
const DefaultPrefix = "stylist"

// Configuration keys.
const (
	PrefixKey = "stylist.prefix"
	MinifyKey = "stylist.minify"
)

// ErrDuplicateStyle is returned when registering a style whose key is
// already taken.
var ErrDuplicateStyle = errors.New("a style with this key has already been registered")

// StyleKey identifies a style.
type StyleKey struct {
	Prefix string // class name prefix
	Source string // canonical text of the resolved sheet
}

// Sink attaches rendered CSS to a document.
type Sink interface {
	Mount(className string, css string) error
	Unmount(className string)
}

// Registry holds the styles of a document. It is safe for concurrent use.
type Registry struct {
	mx     sync.Mutex
	prefix string
	minify bool
	sink   Sink
	styles map[StyleKey]*Style
}

// New creates a registry. conf may be nil, in which case defaults are used.
// A nil sink discards all CSS.
func New(conf schuko.Configuration, sink Sink) *Registry {
	r := &Registry{
		prefix: DefaultPrefix,
		sink:   sink,
		styles: make(map[StyleKey]*Style),
	}
	if conf != nil {
		if conf.IsSet(PrefixKey) && conf.GetString(PrefixKey) != "" {
			r.prefix = conf.GetString(PrefixKey)
		}
		r.minify = conf.GetBool(MinifyKey)
	}
	if r.sink == nil {
		r.sink = discard{}
	}
	return r
}

// Prefix returns the default class name prefix of r.
func (r *Registry) Prefix() string {
	return r.prefix
}

// Style returns the style for a sheet, with placeholders bound to values
// from bindings, under the registry's default prefix. If the style does not
// yet exist, it is created, mounted and registered.
func (r *Registry) Style(sheet ast.Sheet, bindings map[string]string) (*Style, error) {
	return r.StyleWithPrefix(r.prefix, sheet, bindings)
}

// StyleWithPrefix is like Style, but uses a custom class name prefix.
// Equal sheets under different prefixes are different styles.
func (r *Registry) StyleWithPrefix(prefix string, sheet ast.Sheet, bindings map[string]string) (*Style, error) {
	resolved, err := render.Resolve(sheet, bindings)
	if err != nil {
		return nil, err
	}
	key := StyleKey{Prefix: prefix, Source: resolved.String()}
	r.mx.Lock()
	defer r.mx.Unlock()
	if style, ok := r.styles[key]; ok {
		tracer().Debugf("re-using style %s", style.className)
		return style, nil
	}
	style, err := r.newStyle(key, resolved)
	if err != nil {
		return nil, err
	}
	if err := r.register(style); err != nil {
		return nil, err
	}
	return style, nil
}

func (r *Registry) newStyle(key StyleKey, resolved ast.Sheet) (*Style, error) {
	style := &Style{
		key:       key,
		className: ClassName(key),
		sheet:     resolved,
		registry:  r,
	}
	css, err := render.String(resolved, render.Context{
		ClassName: style.className,
		Minify:    r.minify,
	})
	if err != nil {
		return nil, err
	}
	style.css = css
	return style, nil
}

// Register adds a style to r and mounts its CSS. Styles are usually
// registered implicitly by Style; Register is for re-attaching a style
// after it has been unregistered. It fails with ErrDuplicateStyle if a
// style with the same key is present.
func (r *Registry) Register(style *Style) error {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.register(style)
}

func (r *Registry) register(style *Style) error {
	if _, ok := r.styles[style.key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateStyle, style.className)
	}
	if err := r.sink.Mount(style.className, style.css); err != nil {
		return fmt.Errorf("cannot mount style %s: %w", style.className, err)
	}
	style.registry = r
	r.styles[style.key] = style
	tracer().Infof("registered style %s", style.className)
	return nil
}

// Unregister removes the style for key and unmounts its CSS. Unknown keys
// are ignored.
func (r *Registry) Unregister(key StyleKey) {
	r.mx.Lock()
	defer r.mx.Unlock()
	style, ok := r.styles[key]
	if !ok {
		return
	}
	delete(r.styles, key)
	r.sink.Unmount(style.className)
	tracer().Infof("unregistered style %s", style.className)
}

// Get returns the style for key, if present.
func (r *Registry) Get(key StyleKey) (*Style, bool) {
	r.mx.Lock()
	defer r.mx.Unlock()
	style, ok := r.styles[key]
	return style, ok
}

// Len returns the number of registered styles.
func (r *Registry) Len() int {
	r.mx.Lock()
	defer r.mx.Unlock()
	return len(r.styles)
}

// ClassName derives the class name for a style key.
func ClassName(key StyleKey) string {
	h := fnv.New64a()
	h.Write([]byte(key.Prefix))
	h.Write([]byte{0})
	h.Write([]byte(key.Source))
	return key.Prefix + "-" + strconv.FormatUint(h.Sum64(), 36)
}

type discard struct{}

func (discard) Mount(string, string) error { return nil }
func (discard) Unmount(string)             {}

// --- Style -----------------------------------------------------------------

// Style is a sheet mounted under a class name. Styles are immutable, apart
// from their registration status.
type Style struct {
	key       StyleKey
	className string
	css       string
	sheet     ast.Sheet
	registry  *Registry
}

// ClassName returns the class name to attach to elements.
func (s *Style) ClassName() string {
	return s.className
}

// Key returns the identity of s.
func (s *Style) Key() StyleKey {
	return s.key
}

// CSS returns the rendered CSS of s.
func (s *Style) CSS() string {
	return s.css
}

// Sheet returns the resolved sheet of s.
func (s *Style) Sheet() ast.Sheet {
	return s.sheet
}

// Unregister detaches s from its registry.
func (s *Style) Unregister() {
	if s.registry != nil {
		s.registry.Unregister(s.key)
	}
}

func (s *Style) String() string {
	return s.className
}
