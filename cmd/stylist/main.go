/*
Command stylist parses style sheets and renders them as CSS.

Usage:

    stylist [flags] [file]

The sheet is read from file or, if none is given, from standard input.
Flags:

    -tree           print the syntax tree instead of CSS
    -class name     scope the sheet under a class name
    -bind k=v       bind placeholder ${k} to v; may be repeated
    -minify         write compact CSS
    -check          re-parse the CSS output with a CSS parser, report its rules
    -html file      mount the style into an HTML document and print the document
    -prefix p       class name prefix for -html, default "stylist"
    -trace level    trace level: Error, Info or Debug

The exit status is 1 for invalid sheets and 2 for usage errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/stylist"
	"github.com/npillmayer/stylist/ast"
	"github.com/npillmayer/stylist/cssom"
	"github.com/npillmayer/stylist/cssom/douceuradapter"
	"github.com/npillmayer/stylist/inject"
	"github.com/npillmayer/stylist/registry"
	"github.com/npillmayer/stylist/render"
)

// tracer traces with key 'stylist.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.cmd")
}

// traceKeys are the tracers configured by -trace.
var traceKeys = []string{
	"stylist", "stylist.ast", "stylist.parser", "stylist.cache", "stylist.render",
	"stylist.registry", "stylist.inject", "stylist.cssom", "stylist.cmd",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// bindings collects -bind flags.
type bindings map[string]string

func (b bindings) String() string {
	pairs := make([]string, 0, len(b))
	for k, v := range b {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (b bindings) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("binding must be of form name=value, is %q", s)
	}
	b[k] = v
	return nil
}

type options struct {
	tree, minify, check bool
	class, prefix       string
	htmlFile, level     string
	binds               bindings
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := options{binds: bindings{}}
	fs := flag.NewFlagSet("stylist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.tree, "tree", false, "print the syntax tree instead of CSS")
	fs.StringVar(&opts.class, "class", "", "scope the sheet under a class name")
	fs.Var(opts.binds, "bind", "bind placeholder `name=value`; may be repeated")
	fs.BoolVar(&opts.minify, "minify", false, "write compact CSS")
	fs.BoolVar(&opts.check, "check", false, "re-parse the CSS output, report its rules")
	fs.StringVar(&opts.htmlFile, "html", "", "mount the style into an HTML `file`")
	fs.StringVar(&opts.prefix, "prefix", registry.DefaultPrefix, "class name prefix for -html")
	fs.StringVar(&opts.level, "trace", "Error", "trace `level`")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "stylist: at most one input file allowed")
		return 2
	}
	conf := configure(opts)
	if err := setupTracing(conf); err != nil {
		fmt.Fprintf(stderr, "stylist: %v\n", err)
		return 2
	}
	defer trace2go.Teardown()
	//
	input, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "stylist: %v\n", err)
		return 2
	}
	sheet, err := stylist.Parse(input)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	switch {
	case opts.tree:
		fmt.Fprint(stdout, ast.Dump(sheet))
		return 0
	case opts.htmlFile != "":
		err = mountIntoHTML(conf, opts, sheet, stdout)
	default:
		err = writeCSS(opts, sheet, stdout, stderr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "stylist: %v\n", err)
		return 1
	}
	return 0
}

// configure maps command line options to configuration keys.
func configure(opts options) testconfig.Conf {
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"tracelevel.root":  opts.level,
		registry.PrefixKey: opts.prefix,
		registry.MinifyKey: opts.minify,
	}
	for _, key := range traceKeys {
		conf["tracelevel."+key] = opts.level
	}
	return conf
}

func setupTracing(conf testconfig.Conf) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	var b []byte
	var err error
	if path == "" || path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	tracer().Debugf("read %d bytes of input", len(b))
	return string(b), nil
}

func writeCSS(opts options, sheet ast.Sheet, stdout, stderr io.Writer) error {
	out, err := render.String(sheet, render.Context{
		ClassName: opts.class,
		Bindings:  opts.binds,
		Minify:    opts.minify,
	})
	if err != nil {
		return err
	}
	if opts.check {
		styles, err := douceuradapter.Parse(out)
		if err != nil {
			return fmt.Errorf("output is not valid CSS: %w", err)
		}
		cssom.Walk(styles, func(r cssom.Rule) bool {
			fmt.Fprintf(stderr, "rule %q: %d properties\n", r.Selector(), len(r.Properties()))
			return true
		})
	}
	_, err = io.WriteString(stdout, out)
	return err
}

func mountIntoHTML(conf testconfig.Conf, opts options, sheet ast.Sheet, stdout io.Writer) error {
	f, err := os.Open(opts.htmlFile)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := inject.Parse(f)
	if err != nil {
		return err
	}
	reg := registry.New(conf, doc)
	style, err := reg.Style(sheet, opts.binds)
	if err != nil {
		return err
	}
	tracer().Infof("mounted style as class %s", style.ClassName())
	return doc.Render(stdout)
}
