package stylist

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/stylist/ast"
	"github.com/npillmayer/stylist/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsesDefaultCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist", "stylist.cache")
	defer teardown()
	//
	text := ".root-test { color: ${c}; }"
	before := defaultCache.Stats()
	s1, err := Parse(text)
	require.NoError(t, err)
	s2, err := Parse(text)
	require.NoError(t, err)
	assert.True(t, s1.Equal(s2))
	after := defaultCache.Stats()
	assert.Equal(t, before.Misses+1, after.Misses)
	assert.Equal(t, before.Hits+1, after.Hits)
	assert.True(t, defaultCache.Contains(text))
	t.Logf("\n%s", ast.Dump(s1))
}

func TestParseError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist")
	defer teardown()
	//
	_, err := Parse("@media screen { color: red;")
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *parser.ParseError, got %v", err)
	}
	t.Logf("error: %v", err)
}

func TestMustParsePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stylist")
	defer teardown()
	//
	assert.NotPanics(t, func() { MustParse("color: red;") })
	assert.Panics(t, func() { MustParse("color: red") })
}

func TestNewCacheIsIndependent(t *testing.T) {
	c := NewCache()
	_, err := c.Parse("a { b: c; }")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.False(t, defaultCache.Contains("a { b: c; }"))
}
