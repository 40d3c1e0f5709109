package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/stylist/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lit    = ast.Literal
	interp = ast.Interpolation
)

func attr(key string, value ...ast.StringFragment) ast.StyleAttribute {
	return ast.NewAttribute(key, value...)
}

func sel(frags ...ast.StringFragment) ast.Selector {
	return ast.NewSelector(frags...)
}

func sels(names ...string) []ast.Selector {
	s := make([]ast.Selector, len(names))
	for i, n := range names {
		s[i] = ast.NewSelector(lit(n))
	}
	return s
}

func block(cond []ast.Selector, attrs ...ast.StyleAttribute) ast.Block {
	return ast.NewBlock(cond, attrs)
}

func rule(cond []ast.StringFragment, content ...ast.RuleContent) ast.Rule {
	return ast.NewRule(cond, content)
}

func checkParse(t *testing.T, input string, expected ast.Sheet) {
	t.Helper()
	sheet, err := Parse(input)
	require.NoError(t, err)
	if !sheet.Equal(expected) {
		t.Logf("parsed:\n%s", ast.Dump(sheet))
		t.Logf("expected:\n%s", ast.Dump(expected))
		t.Errorf("parse result differs from expected sheet for %q", input)
	}
}

func TestEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	for _, input := range []string{"", "   \n\t ", "/* nothing */", " /* a */ /* b */ "} {
		sheet, err := Parse(input)
		if err != nil {
			t.Fatalf("expected empty input %q to parse, got %v", input, err)
		}
		if !sheet.IsEmpty() {
			t.Errorf("expected %q to yield an empty sheet, has %d items", input, sheet.Len())
		}
	}
}

func TestDanglingAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, "color: red;", ast.NewSheet(
		block(nil, attr("color", lit("red"))),
	))
}

func TestNestedBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, ".nested { width: 100px; }", ast.NewSheet(
		block(sels(".nested"), attr("width", lit("100px"))),
	))
}

func TestSimpleExample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `
            background-color: red;

            .nested {
                background-color: blue;
                width: 100px;
            }`
	checkParse(t, input, ast.NewSheet(
		block(nil, attr("background-color", lit("red"))),
		block(sels(".nested"),
			attr("background-color", lit("blue")),
			attr("width", lit("100px")),
		),
	))
}

func TestSelectorWithAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `
            background-color: red;

            [placeholder="someone@example.com"] {
                background-color: blue;
                width: 100px;
            }`
	checkParse(t, input, ast.NewSheet(
		block(nil, attr("background-color", lit("red"))),
		block(sels(`[placeholder="someone@example.com"]`),
			attr("background-color", lit("blue")),
			attr("width", lit("100px")),
		),
	))
}

func TestBracesInQuotedSelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, `[placeholder="\" {}"] { width: 100px; }`, ast.NewSheet(
		block(sels(`[placeholder="\" {}"]`), attr("width", lit("100px"))),
	))
	checkParse(t, `[title='a, b'] { content: "{;}"; }`, ast.NewSheet(
		block(sels(`[title='a, b']`), attr("content", lit(`"{;}"`))),
	))
}

func TestAmpersandSelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, "&:hover {\n background-color: #d0d0d9;\n}", ast.NewSheet(
		block(sels("&:hover"), attr("background-color", lit("#d0d0d9"))),
	))
	checkParse(t, "a:hover{color:red}", ast.NewSheet(
		block(sels("a:hover"), attr("color", lit("red"))),
	))
}

func TestSelectorList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `
                div, span {
                    color: yellow;
                }

                &, & input {
                    color: pink;
                }
            `
	checkParse(t, input, ast.NewSheet(
		block(sels("div", "span"), attr("color", lit("yellow"))),
		block(sels("&", "& input"), attr("color", lit("pink"))),
	))
}

func TestMediaRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, "@media screen and (max-width: 500px) { color: red; }", ast.NewSheet(
		rule([]ast.StringFragment{lit("@media "), lit("screen and (max-width: 500px)")},
			block(nil, attr("color", lit("red"))),
		),
	))
}

func TestMultipleMediaQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `
                @media screen and (max-width: 500px) {
                    background-color: red;
                }

                @media screen and (max-width: 200px) {
                    color: yellow;
                }

                .some-class2 {
                    color: yellow;
                }
            `
	checkParse(t, input, ast.NewSheet(
		rule([]ast.StringFragment{lit("@media "), lit("screen and (max-width: 500px)")},
			block(nil, attr("background-color", lit("red"))),
		),
		rule([]ast.StringFragment{lit("@media "), lit("screen and (max-width: 200px)")},
			block(nil, attr("color", lit("yellow"))),
		),
		block(sels(".some-class2"), attr("color", lit("yellow"))),
	))
}

func TestSupportsRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `
                @supports (backdrop-filter: blur(2px)) or (-webkit-backdrop-filter: blur(2px)) {
                    backdrop-filter: blur(2px);
                    -webkit-backdrop-filter: blur(2px);
                    background-color: rgb(0, 0, 0, 0.7);
                }

                @supports not ((backdrop-filter: blur(2px)) or (-webkit-backdrop-filter: blur(2px))) {
                    background-color: rgb(25, 25, 25);
                }
            `
	checkParse(t, input, ast.NewSheet(
		rule([]ast.StringFragment{
			lit("@supports "),
			lit("(backdrop-filter: blur(2px)) or (-webkit-backdrop-filter: blur(2px))"),
		},
			block(nil,
				attr("backdrop-filter", lit("blur(2px)")),
				attr("-webkit-backdrop-filter", lit("blur(2px)")),
				attr("background-color", lit("rgb(0, 0, 0, 0.7)")),
			),
		),
		rule([]ast.StringFragment{
			lit("@supports "),
			lit("not ((backdrop-filter: blur(2px)) or (-webkit-backdrop-filter: blur(2px)))"),
		},
			block(nil, attr("background-color", lit("rgb(25, 25, 25)"))),
		),
	))
}

func TestNestedAtRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `@media screen {
        .a { color: red; }
        @supports (display: grid) { display: grid; }
        @page { margin: 1cm; }
    }`
	checkParse(t, input, ast.NewSheet(
		rule([]ast.StringFragment{lit("@media "), lit("screen")},
			block(sels(".a"), attr("color", lit("red"))),
			rule([]ast.StringFragment{lit("@supports "), lit("(display: grid)")},
				block(nil, attr("display", lit("grid"))),
			),
			rule([]ast.StringFragment{lit("@page")}, ast.Raw("margin: 1cm;")),
		),
	))
	checkParse(t, "@media(min-width: 10px){a{b:c}}", ast.NewSheet(
		rule([]ast.StringFragment{lit("@media "), lit("(min-width: 10px)")},
			block(sels("a"), attr("b", lit("c"))),
		),
	))
}

func TestInterpolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, "color: ${theme_color};", ast.NewSheet(
		block(nil, attr("color", interp("theme_color"))),
	))
	input := `
            background-color: red;

            .nested, ${var_a} {
                border: ${ w } solid ${c};
                width: 100px;
            }

            @media ${query} {
                width: calc(${w} * 2);
            }`
	checkParse(t, input, ast.NewSheet(
		block(nil, attr("background-color", lit("red"))),
		block([]ast.Selector{sel(lit(".nested")), sel(interp("var_a"))},
			attr("border", interp("w"), lit(" solid "), interp("c")),
			attr("width", lit("100px")),
		),
		rule([]ast.StringFragment{lit("@media "), interp("query")},
			block(nil, attr("width", lit("calc("), interp("w"), lit(" * 2)"))),
		),
	))
	checkParse(t, "div, ${sel} > a { x: y; }", ast.NewSheet(
		block([]ast.Selector{sel(lit("div")), sel(interp("sel"), lit(" > a"))}, attr("x", lit("y"))),
	))
	checkParse(t, "content: ${ä_1};", ast.NewSheet(
		block(nil, attr("content", interp("ä_1"))),
	))
}

func TestLoneDollarIsLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, "width: $5;", ast.NewSheet(
		block(nil, attr("width", lit("$5"))),
	))
}

func TestEmptyBodies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, ".nested {}", ast.NewSheet(block(sels(".nested"))))
	checkParse(t, "@media screen and (max-width: 500px) {}", ast.NewSheet(
		rule([]ast.StringFragment{lit("@media "), lit("screen and (max-width: 500px)")}),
	))
	checkParse(t, "div { ; color: red;; width: 1px }", ast.NewSheet(
		block(sels("div"), attr("color", lit("red")), attr("width", lit("1px"))),
	))
}

func TestOpaqueRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `@keyframes move {
        from { left: 0; }
        to { left: 100px; }
    }`
	checkParse(t, input, ast.NewSheet(
		rule([]ast.StringFragment{lit("@keyframes move")},
			ast.Raw("from"), ast.Raw("{"), ast.Raw("left: 0;"), ast.Raw("}"),
			ast.Raw("to"), ast.Raw("{"), ast.Raw("left: 100px;"), ast.Raw("}"),
		),
	))
	checkParse(t, `@font-face { font-family: "a}b"; src: url(x.woff); }`, ast.NewSheet(
		rule([]ast.StringFragment{lit("@font-face")},
			ast.Raw(`font-family: "a}b"; src: url(x.woff);`),
		),
	))
}

func TestComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `/* head */ color: /* c */ red /* d */;
        /* x * y **/
        .a { /* e */ width: 1px; }`
	checkParse(t, input, ast.NewSheet(
		block(nil, attr("color", lit("red"))),
		block(sels(".a"), attr("width", lit("1px"))),
	))
}

func TestCommentsSeparateTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, "margin: 1px/**/2px;", ast.NewSheet(
		block(nil, attr("margin", lit("1px 2px"))),
	))
	checkParse(t, "div/**/span { a: b; }", ast.NewSheet(
		block(sels("div span"), attr("a", lit("b"))),
	))
	checkParse(t, "border: ${w}/* w */solid; margin: 1px /* x */ 2px;", ast.NewSheet(
		block(nil,
			attr("border", interp("w"), lit(" solid")),
			attr("margin", lit("1px  2px")),
		),
	))
}

func TestCommentInOpaqueRuleName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	checkParse(t, "@font-face /* { */ { src: x; }", ast.NewSheet(
		rule([]ast.StringFragment{lit("@font-face")}, ast.Raw("src: x;")),
	))
}

func TestSelectorListError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	_, err := Parse("div, { a: b; }")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	t.Logf("error: %v", err)
	assert.Equal(t, 5, perr.Offset)
	assert.Contains(t, perr.Reason, "expected selector")
	assert.Contains(t, perr.Context, "block")
	//
	_, err = Parse("color: red")
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Reason, `expected ';'`)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	tests := []struct {
		input  string
		reason string
	}{
		{".a { color: red;", `expected '}'`},
		{`color: "red;`, "unterminated string"},
		{"color: ${1abc};", "expected identifier"},
		{"color: ${abc;", `"}" to close interpolation`},
		{"color: ${abc", "unterminated interpolation"},
		{"@media {}", "at-rule prelude"},
		{"}", `unexpected "}"`},
		{"color: red", `expected ';'`},
		{"color: red; /* open", "unterminated comment"},
		{"@import url(x.css);", `expected "{"`},
		{"@media screen { color: red; ", `expected '}'`},
		{".a { .b { color: red; } }", `expected ':'`},
		{"a { b: c d }}", `unexpected "}"`},
	}
	for _, test := range tests {
		sheet, err := Parse(test.input)
		if err == nil {
			t.Logf("parsed:\n%s", ast.Dump(sheet))
			t.Errorf("expected %q to fail", test.input)
			continue
		}
		t.Logf("%q -> %v", test.input, err)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("expected error of type *ParseError, is %T", err)
			continue
		}
		if !strings.Contains(perr.Reason, test.reason) {
			t.Errorf("expected reason for %q to contain %q, is %q", test.input, test.reason, perr.Reason)
		}
		if n := len(perr.Context); n == 0 || perr.Context[n-1] != "sheet" {
			t.Errorf("expected outermost context to be 'sheet', is %v", perr.Context)
		}
		if !sheet.IsEmpty() {
			t.Errorf("expected no partial result for %q", test.input)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	_, err := Parse("a {\n  color: red;\n")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, 1, perr.Column)
	assert.Equal(t, []string{"block", "scope", "sheet"}, perr.Context)
	assert.Contains(t, perr.Error(), "line 3, column 1")
	assert.Contains(t, perr.Error(), "at end of input")
	//
	_, err = Parse("x: y;\n.a { b: ${ 9 }; }")
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 12, perr.Column)
	assert.Equal(t, "identifier", perr.Context[0])
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist.parser")
	defer teardown()
	//
	input := `
        color: red; margin: 0 auto;
        div, span > a, [title="x {y}"] { color: ${c}; border: 1px solid black }
        @media screen and (max-width: 500px) {
            .a:hover { width: 1px; }
            @supports (display: grid) { display: grid; }
        }
        @keyframes spin { from { transform: rotate(0deg); } to { transform: rotate(360deg); } }
        .empty {}
    `
	first, err := Parse(input)
	require.NoError(t, err)
	source := first.String()
	t.Logf("canonical form:\n%s", source)
	second, err := Parse(source)
	require.NoError(t, err)
	if !first.Equal(second) {
		t.Logf("first:\n%s", ast.Dump(first))
		t.Logf("second:\n%s", ast.Dump(second))
		t.Errorf("expected canonical form to parse to an equal sheet")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	input := "a { b: c; } @media x { d: e; }"
	s1, err1 := Parse(input)
	s2, err2 := Parse(input)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, s1.Equal(s2))
}
