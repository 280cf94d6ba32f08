package parse

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ohait/forego/ctx"
)

type Grammar struct {

	// Trailing regexp
	End *regexp.Regexp

	// if > 0, fail with ErrTooDeep when alternations nest deeper than this
	MaxDepth int

	alts  map[string]*Alts
	Log   func(f string, args ...any)
	Stats Stats
}

type Stats struct {
	Productions  int
	Alternations int
}

var Whitespaces = regexp.MustCompile(`[\s\n\r]*`)
var CommentsAndWhitespaces = regexp.MustCompile(`(\s|//[^\n]*\n?)*`)

// return the list of alternatives with the given name, creating it if needed
func (this *Grammar) Alt(name string) *Alts {
	if this.alts == nil {
		this.alts = map[string]*Alts{}
	}
	a := this.alts[name]
	if a == nil {
		a = &Alts{Grammar: this, Name: name}
		this.alts[name] = a
	}
	return a
}

// Add a new production with the given name and directive, use Return() to set the action
// panics if the directive is invalid (you normally don't want to handle the error, since can be seen as a compile time error)
func (this *Grammar) Add(name string, directive string) *Prod {
	return this.Alt(name).add(directive, nil, 2)
}

// check the grammar, returns an error if the grammar is not complete or the types don't match
func (this *Grammar) Verify() error {
	names := make([]string, 0, len(this.alts))
	for name := range this.alts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if this.Log != nil {
			this.Log("verify[%q]", name)
		}
		for _, p := range this.alts[name].prods {
			err := p.verify()
			if err != nil {
				return ctx.NewErrorf(nil, "%s: `%s`: %v", name, p.Directive, err)
			}
		}
	}
	return nil
}

// parse the given text starting from the named production
// the whole text must be consumed (after End, if any) or ErrIncomplete is returned
func (this *Grammar) Parse(name string, text []byte) (any, error) {
	alt := this.alts[name]
	if alt == nil || len(alt.prods) == 0 {
		return nil, ctx.NewErrorf(nil, "no production named %q", name)
	}
	p := &pos{
		g:   this,
		src: &Src{bytes: text},
	}
	out, err := p.consumeAlt(alt)
	if err != nil {
		return nil, err
	}
	if this.End != nil {
		_ = p.IgnoreRE(this.End, false)
	}
	if p.at < len(text) {
		return out, p.NewErrorf(ErrIncomplete, "unparsed %q", p.Rem(80))
	}
	return out, nil
}

// human readable list of all the productions, in order
func (this *Grammar) Dump() string {
	names := make([]string, 0, len(this.alts))
	for name := range this.alts {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		for i, p := range this.alts[name].prods {
			fmt.Fprintf(&sb, "%s/%d: %s\t(%s)\n", name, i, p.Directive, p.src)
		}
	}
	return sb.String()
}
