package parse

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// a recognizer could not match at the current position
	ErrNoMatch = errors.New("no match")

	// the input was parsed, but something is left over
	ErrIncomplete = errors.New("incomplete parse")

	// Grammar.MaxDepth exceeded
	ErrTooDeep = errors.New("too deep")
)

// span of source consumed by a production, can be requested as the first argument of an action
type Pos struct {
	From int
	End  int
	Src  []byte
}

func (this Pos) String() string {
	return fmt.Sprintf("%d-%d", this.From, this.End)
}

// the text consumed
func (this Pos) Text() string {
	return string(this.Src[this.From:this.End])
}

type pos struct {
	g      *Grammar
	src    *Src
	at     int
	depth  int
	stack  []string
	commit bool
	p      *Prod
}

func (this *pos) Log(f string, args ...any) {
	if this.g.Log != nil {
		rem := strings.TrimSuffix(fmt.Sprintf("%q", this.Rem(25))[1:], `"`)
		if len(rem) > 20 {
			rem = rem[0:20]
		}
		prod := ""
		if this.p != nil {
			prod = this.p.src
		}
		this.g.Log("\033[0;33m%-020s\033[0;34m %s \033[0;35m%s\033[0m %s",
			rem,
			strings.Join(this.stack, "."),
			prod,
			fmt.Sprintf(f, args...),
		)
	}
}

func (this *pos) Rem(max int) string {
	rem := this.src.bytes[this.at:]
	if len(rem) > max {
		rem = rem[0:max]
	}
	return string(rem)
}

func (this *pos) IgnoreRE(re *regexp.Regexp, negative bool) error {
	m := re.FindIndex(this.src.bytes[this.at:])
	if m == nil || m[0] != 0 {
		if negative {
			return nil
		}
		return fmt.Errorf("expected /%v/", re)
	}
	if negative {
		return fmt.Errorf("unexpected /%v/", re)
	}
	this.at += m[1]
	if m[1] > 0 {
		this.Log("skip /%s/: %q", re, this.src.bytes[this.at-m[1]:this.at])
	}
	return nil
}

// re must be anchored with ^
func (this *pos) ConsumeRE(re *regexp.Regexp) (string, *Error) {
	m := re.FindIndex(this.src.bytes[this.at:])
	if m == nil {
		this.Log("FAIL /%v/", re)
		return "", this.NewErrorf(ErrNoMatch, "expected /%v/ got %q", re, this.Rem(20))
	}
	if m[0] != 0 {
		panic("re must match from the beginning")
	}
	out := this.src.bytes[this.at : this.at+m[1]]
	this.at += m[1]
	this.Log("CONSUMED /%v/ %q", re, out)
	return string(out), nil
}

func (this *pos) push(n string) {
	this.stack = append(this.stack, n)
}

// try to consume each of the alternatives in the given order
// first that succeed is returned, a committed failure stops the search
// if none succeed the error which went further is returned
func (this *pos) consumeAlt(alt *Alts) (any, *Error) {
	if this.g.MaxDepth > 0 && this.depth >= this.g.MaxDepth {
		err := this.NewErrorf(ErrTooDeep, "more than %d nested productions at %q", this.g.MaxDepth, alt.Name)
		err.commit = true
		return nil, err
	}
	var errs []*Error
	for n, prod := range alt.prods {
		p := *this
		p.commit = false
		p.depth++
		if this.g.Log != nil {
			p.push(fmt.Sprintf("%s/%d", prod.Name, n))
			p.Log("trying `%s`", prod.Directive)
		}
		out, err := prod.exec(&p)
		if err == nil {
			this.at = p.at
			return out, nil
		}
		if p.commit || err.commit {
			p.Log("failed+commit: %v", err)
			err.commit = true
			return nil, err
		}
		p.Log("failed: %v", err)
		errs = append(errs, err)
	}
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].at > errs[j].at
	})
	return nil, errs[0]
}

// kind is one of the Err* sentinels (or any error to wrap), and can be checked with errors.Is()
func (this *pos) NewErrorf(kind error, f string, args ...any) *Error {
	return &Error{
		err: fmt.Errorf("%w: "+f, append([]any{kind}, args...)...),
		at:  this.at,
		src: this.src,
	}
}

type Error struct {
	err    error
	at     int
	src    *Src
	commit bool
}

func (this Error) Error() string {
	return fmt.Sprintf("%v at line %d (offset %d)", this.err, this.Line(), this.at)
}
func (this Error) Unwrap() error { return this.err }

// byte offset where the error happened
func (this Error) Offset() int { return this.at }

func (this Error) Line() int { return this.src.Line(this.at) }
