package parse

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/ohait/forego/ctx"
)

type Prod struct {
	g *Grammar

	// what to ignore before any text matching
	WS *regexp.Regexp

	// Set by Add()
	Name string

	// Set by Add()
	Directive string

	// file:line where this production was Add()-ed
	src string

	// each directive part will generate
	actions []action

	// function to be used at the end of the production
	ret func(from int, at *pos, in []any) (any, error)

	// set by Return(), used by Verify()
	retType  reflect.Type
	argTypes []reflect.Type
}

type action struct {
	// if true, results won't be added to the output
	silent bool

	commit bool

	p        *Prod
	prod     string
	text     string // unquoted literal, for messages
	re       *regexp.Regexp
	negative bool // if true, make into a negative lookahead
}

func (this action) String() string {
	s := ""
	if this.commit {
		return "+"
	}
	if this.negative {
		s = "!"
	} else if this.silent && this.text == "" {
		s = "~"
	}
	if this.text != "" {
		return s + strconv.Quote(this.text)
	}
	if this.re != nil {
		return s + "/" + strings.TrimPrefix(this.re.String(), "^") + "/"
	}
	return s + this.prod
}

func (this action) exec(p *pos) (any, *Error) {
	if this.commit {
		p.Log("commit")
		p.commit = true
		return nil, nil
	}
	if this.re != nil {
		if ws := this.p.WS; ws != nil {
			err := p.IgnoreRE(ws, false)
			if err != nil {
				return nil, p.NewErrorf(ErrNoMatch, "can't consume whitespace: %v", err)
			}
		}
		return p.ConsumeRE(this.re)
	}
	if this.prod != "" {
		alt := this.p.g.alts[this.prod]
		if alt == nil || len(alt.prods) == 0 {
			return nil, p.NewErrorf(ErrNoMatch, "no prod with name %q", this.prod)
		}
		return p.consumeAlt(alt)
	}
	return nil, p.NewErrorf(ErrNoMatch, "empty action")
}

var textRE = regexp.MustCompile(`^"(([^"\\]|\\.)*)"`)
var reRE = regexp.MustCompile(`^/(([^/\\]|\\.)*)/`)
var nameRE = regexp.MustCompile(`^\w+`)

// `"foo\n"` is a go quoted string, matched literally
func parseText(d string) (string, *regexp.Regexp, int, error) {
	m := textRE.FindString(d)
	if m == "" {
		return "", nil, 0, ctx.NewErrorf(nil, "invalid text `%s`", d)
	}
	text, err := strconv.Unquote(m)
	if err != nil {
		return "", nil, 0, ctx.NewErrorf(nil, "invalid text `%s`: %v", m, err)
	}
	if text == "" {
		return "", nil, 0, ctx.NewErrorf(nil, "empty text `%s`", m)
	}
	return text, regexp.MustCompile("^" + regexp.QuoteMeta(text)), len(m), nil
}

func parseRE(d string) (*regexp.Regexp, int, error) {
	m := reRE.FindStringSubmatch(d)
	if m == nil {
		return nil, 0, ctx.NewErrorf(nil, "invalid regexp `%s`", d)
	}
	re, err := regexp.Compile("^(?:" + m[1] + ")")
	if err != nil {
		return nil, 0, ctx.NewErrorf(nil, "invalid regexp `%s`: %v", m[1], err)
	}
	return re, len(m[0]), nil
}

func (this *Prod) build() error {
	this.Directive = strings.TrimSpace(this.Directive)
	negative := false
	silent := false
	d := this.Directive
	for len(d) > 0 {
		switch d[0] {

		case '~':
			silent = true
			d = d[1:]

		case '!': // negative look ahead
			negative = true
			d = d[1:]

		case '+': // commit to this production
			if negative || silent {
				return ctx.NewErrorf(nil, "unexpected `+` after modifier in `%s`", this.Directive)
			}
			this.actions = append(this.actions, action{
				p:      this,
				commit: true,
				silent: true,
			})
			d = d[1:]

		case '"':
			text, re, ct, err := parseText(d)
			if err != nil {
				return err
			}
			d = d[ct:]
			this.actions = append(this.actions, action{
				p:        this,
				text:     text,
				re:       re,
				negative: negative,
				silent:   true,
			})
			negative = false
			silent = false

		case '/':
			re, ct, err := parseRE(d)
			if err != nil {
				return err
			}
			d = d[ct:]
			this.actions = append(this.actions, action{
				p:        this,
				re:       re,
				negative: negative,
				silent:   silent || negative,
			})
			negative = false
			silent = false

		case ' ', '\t', '\n', '\r': // ignore whitespace
			d = d[1:]

		default: // by default, we assume it's the production name
			name := nameRE.FindString(d)
			if name == "" {
				return ctx.NewErrorf(nil, "invalid directive: %q", d)
			}
			d = d[len(name):]
			this.actions = append(this.actions, action{
				p:        this,
				prod:     name,
				negative: negative,
				silent:   silent || negative,
			})
			negative = false
			silent = false
		}
	}
	if negative || silent {
		return ctx.NewErrorf(nil, "dangling modifier in `%s`", this.Directive)
	}
	return nil
}

func (this *Prod) verify() error {
	arg := 0
	if len(this.argTypes) > 0 && this.argTypes[0] == posType {
		arg++
	}
	for _, act := range this.actions {
		if act.prod != "" {
			if this.g.alts[act.prod] == nil || len(this.g.alts[act.prod].prods) == 0 {
				return ctx.NewErrorf(nil, "production %q `%s` refers to empty %q", this.Name, this.Directive, act.prod)
			}
		}
		if act.silent {
			continue
		}
		if this.argTypes == nil {
			continue
		}
		want := this.argTypes[arg]
		arg++
		var got reflect.Type
		switch {
		case act.re != nil:
			got = reflect.TypeOf("")
		case act.prod != "":
			got = this.g.alts[act.prod].retType()
		}
		if got == nil || got.Kind() == reflect.Interface || want.Kind() == reflect.Interface && want.NumMethod() == 0 {
			continue
		}
		if !got.AssignableTo(want) {
			return ctx.NewErrorf(nil, "%s: `%v` returns %v, but %v is expected", this.src, act, got, want)
		}
	}
	return nil
}

func (this *Prod) exec(p *pos) (any, *Error) {
	p.p = this
	list := make([]any, 0, len(this.actions))
	from := p.at
	for _, act := range this.actions {
		if act.negative {
			at := p.at
			_, err := act.exec(p)
			p.at = at
			if err == nil {
				p.Log("negative lookahead %v matched", act)
				return nil, p.NewErrorf(ErrNoMatch, "unexpected %v", act)
			}
			continue
		}
		out, err := act.exec(p)
		if err != nil {
			if err.commit {
				// committed error must return directly
				return nil, err
			}
			if p.commit {
				// if we are committed, but the error isn't, wrap it so it's easier to see where the commit happened
				err = &Error{
					err:    fmt.Errorf("expected %v got %q: %w", act, p.Rem(10), err.err),
					at:     err.at,
					src:    err.src,
					commit: true,
				}
			}
			return nil, err
		}
		if !act.silent {
			list = append(list, out)
		}
	}
	out, err := this.ret(from, p, list)
	if err != nil {
		e := p.NewErrorf(ErrNoMatch, "%s: %w", this.Name, err)
		e.commit = p.commit
		return out, e
	}
	if this.g.Log != nil {
		p.Log("return %v", out)
	}
	return out, nil
}

var posType = reflect.TypeOf(Pos{})
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// set a new return
// action must be a function with one argument per non-silent directive part (optionally preceded by a Pos)
// and must return (X) or (X, error)
func (this *Prod) Return(action any) *Prod {
	if action == nil {
		this.retType = nil
		this.argTypes = nil
		this.ret = func(from int, p *pos, in []any) (any, error) {
			switch len(in) {
			case 0:
				return nil, nil
			case 1:
				return in[0], nil
			default:
				return in, nil
			}
		}
		return this
	}
	f := reflect.ValueOf(action)
	t := f.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("%s: expected a func, got %v", this.src, t))
	}

	actNum := 0
	for _, act := range this.actions {
		if !act.silent {
			actNum++
		}
	}
	wantPos := t.NumIn() > 0 && t.In(0) == posType
	if wantPos {
		actNum++
	}

	if t.NumIn() != actNum {
		panic(fmt.Sprintf("%s: %v expects %d args, but %d are in the directive `%s`", this.src, t, t.NumIn(), actNum, this.Directive))
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			panic(fmt.Sprintf("%s: %v should return (X, error) or (X)", this.src, t))
		}
	default:
		panic(fmt.Sprintf("%s: %v should return (X, error) or (X)", this.src, t))
	}

	this.retType = t.Out(0)
	this.argTypes = make([]reflect.Type, t.NumIn())
	for i := range this.argTypes {
		this.argTypes[i] = t.In(i)
	}

	this.ret = func(from int, p *pos, in []any) (any, error) {
		if this.g.Log != nil {
			ins := []string{}
			for _, in := range in {
				ins = append(ins, fmt.Sprintf("%T", in))
			}
			p.Log("calling `%v` with (%s)", t, strings.Join(ins, ", "))
		}
		list := make([]reflect.Value, 0, t.NumIn())
		if wantPos {
			list = append(list, reflect.ValueOf(Pos{From: from, End: p.at, Src: p.src.bytes}))
		}
		for _, in := range in {
			v, err := coerce(reflect.ValueOf(in), t.In(len(list)))
			if err != nil {
				return nil, fmt.Errorf("%s: can't coerce arg #%d: %w", this.src, len(list), err)
			}
			list = append(list, v)
		}
		out := f.Call(list)
		if len(out) == 2 && !out[1].IsNil() {
			return out[0].Interface(), out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}
	return this
}
