package lambda

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/ohait/forego/ctx"
	parse "github.com/ohait/parse-lambda-go"
)

// a letter or underscore, followed by letters, decimal digits or underscores
// other numeric classes (Nl, No: `Ⅻ`, `²`) are not part of identifiers
const identifier = `[\p{L}_][\p{L}\p{Nd}_]*`

var identifierRE = regexp.MustCompile(`^` + identifier + `$`)

// ValidIdentifier reports whether s can be used as a variable or parameter name.
func ValidIdentifier(s string) bool {
	return identifierRE.MatchString(s)
}

// same set as unicode.IsSpace: ASCII \s plus \v, NEL and the Z categories
var whitespaceRE = regexp.MustCompile(`[\s\v\x{0085}\p{Z}]*`)

// the input is empty, or only whitespace
var ErrEmptyInput = errors.New("empty input")

// DefaultMaxDepth is used by Parse() and by a Parser with a zero MaxDepth.
const DefaultMaxDepth = 10000

type WhitespacePolicy int

const (
	// whitespace is skipped before each token, so `x y` is rejected
	SkipWhitespace WhitespacePolicy = iota

	// all whitespace is removed before parsing, so `x y` is the variable `xy`
	StripWhitespace
)

// NewGrammar returns the canonical lambda term grammar, starting from "term":
//
//	term := identifier
//	      | "(" "\" identifier "." term ")"
//	      | "(" term "$" term ")"
//
// ws is skipped before every token, use nil when the input has no whitespace.
// Every alternative produces a Term.
func NewGrammar(ws *regexp.Regexp) *parse.Grammar {
	g := &parse.Grammar{End: ws}

	g.Alt("term").Add(`/`+identifier+`/`, func(name string) Term {
		return Variable{Name: name}
	}).WS = ws

	// `(\` can only start an abstraction
	g.Alt("term").Add(`"(" "\\" + /`+identifier+`/ "." term ")"`, func(param string, body Term) Term {
		return Abstraction{Param: param, Body: body}
	}).WS = ws

	// abstraction was tried already, any other `(` must be an application
	g.Alt("term").Add(`"(" + term "$" term ")"`, func(fn, arg Term) Term {
		return Application{Func: fn, Arg: arg}
	}).WS = ws

	return g
}

// Parser holds the parsing options, the zero value is ready to use.
// Options must not be changed after the first call to Parse().
type Parser struct {
	// maximum nesting of terms, a bare variable has depth 1
	MaxDepth int

	Whitespace WhitespacePolicy

	// if set, trace every step of the grammar
	Log func(f string, args ...any)

	once sync.Once
	g    *parse.Grammar
}

func (this *Parser) grammar() *parse.Grammar {
	this.once.Do(func() {
		var ws *regexp.Regexp
		if this.Whitespace == SkipWhitespace {
			ws = whitespaceRE
		}
		this.g = NewGrammar(ws)
		this.g.MaxDepth = this.MaxDepth
		if this.g.MaxDepth <= 0 {
			this.g.MaxDepth = DefaultMaxDepth
		}
		this.g.Log = this.Log
		if err := this.g.Verify(); err != nil {
			panic(err)
		}
	})
	return this.g
}

// Parse the whole text as a single term
func (this *Parser) Parse(text string) (Term, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if this.Whitespace == StripWhitespace {
		text = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, text)
	}
	out, err := this.grammar().Parse("term", []byte(text))
	if err != nil {
		return nil, err
	}
	t, ok := out.(Term)
	if !ok {
		return nil, ctx.NewErrorf(nil, "expected a term, got %T", out)
	}
	return t, nil
}

var defaultParser Parser

// Parse the text with the default options (see Parser)
func Parse(text string) (Term, error) {
	return defaultParser.Parse(text)
}
