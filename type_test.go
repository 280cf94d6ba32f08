package parse

import (
	"strconv"
	"testing"

	"github.com/ohait/forego/test"
)

func TestType(t *testing.T) {
	var g Grammar
	g.Alt("foo").Add(`bar cuz`, func(bar, cuz string) string {
		return bar + " " + cuz
	})
	g.Alt("bar").Add(`/\w+/`, func(s string) string {
		return s
	})
	g.Alt("cuz").Add(`/\d+/`, strconv.Atoi)

	err := g.Verify()
	test.Error(t, err)
	test.Contains(t, err.Error(), "int")
}

func TestTypeInterface(t *testing.T) {
	type Node interface{ String() string }
	var g Grammar
	g.Alt("list").Add(`item item`, func(a, b Node) []Node {
		return []Node{a, b}
	})
	g.Alt("item").Add(`/\w+/`, func(s string) Lit { return Lit{s} }).WS = Whitespaces
	test.NoError(t, g.Verify())

	out, err := g.Parse("list", []byte("a b"))
	test.NoError(t, err)
	test.EqualsGo(t, []Node{Lit{"a"}, Lit{"b"}}, out)

	// mixed return types can't be checked
	g.Alt("item").Add(`/-/`, func(s string) string { return s })
	test.NoError(t, g.Verify())
}

func TestVerifyMissing(t *testing.T) {
	var g Grammar
	g.Add("main", `word missing`)
	g.Add("word", `/\w+/`)
	err := g.Verify()
	test.Error(t, err)
	test.Contains(t, err.Error(), "missing")
}

func TestActionSignature(t *testing.T) {
	var g Grammar
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		t.Logf("panic: %v", r)
	}()
	g.Add("main", `/a/ /b/`).Return(func(a string) string { return a })
}
