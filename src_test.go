package parse

import (
	"testing"

	"github.com/ohait/forego/test"
)

func TestSrcLine(t *testing.T) {
	for _, c := range []struct {
		src  string
		line []int // expected line for each offset, up to len(src)
	}{
		{"a\nb\nc", []int{1, 1, 2, 2, 3, 3}},
		{"a\nb\n", []int{1, 1, 2, 2, 3}},
		{"(\\x.\n\n x)", []int{1, 1, 1, 1, 1, 2, 3, 3, 3, 3}},
		{"", []int{1}},
	} {
		src := Src{bytes: []byte(c.src)}
		for off, line := range c.line {
			if got := src.Line(off); got != line {
				t.Errorf("%q offset %d: expected line %d got %d", c.src, off, line, got)
			}
		}
	}
	var nilSrc *Src
	test.EqualsGo(t, 0, nilSrc.Line(3))
}
