package parse

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/ohait/forego/ctx/log"
)

// ordered list of productions sharing the same name
type Alts struct {
	Grammar *Grammar
	Name    string
	prods   []*Prod
}

// Add a production to the given list, fn is the action (see Prod.Return)
func (this *Alts) Add(directive string, fn any) *Prod {
	return this.add(directive, fn, 2)
}

// skip is the number of frames up to the caller to record as source
func (this *Alts) add(directive string, fn any, skip int) *Prod {
	if this.Grammar.Log != nil {
		this.Grammar.Log("adding %s: %s", this.Name, directive)
	}
	_, file, line, _ := runtime.Caller(skip)
	p := &Prod{
		g:         this.Grammar,
		Name:      this.Name,
		Directive: directive,
		src:       fmt.Sprintf("%s:%d", filepath.Base(file), line),
	}
	err := p.build()
	if err != nil {
		log.Errorf(nil, "can't create prod %q: %v", this.Name, err)
		panic(err)
	}
	this.append(p)
	return p.Return(fn)
}

func (this *Alts) append(p *Prod) {
	this.prods = append(this.prods, p)
	this.Grammar.Stats.Productions++
	if len(this.prods) == 1 {
		this.Grammar.Stats.Alternations++
	}
}

// the type all the typed productions agree on, nil if unknown or mixed
func (this *Alts) retType() reflect.Type {
	var t reflect.Type
	for _, p := range this.prods {
		if p.retType == nil {
			return nil
		}
		if t != nil && t != p.retType {
			return nil
		}
		t = p.retType
	}
	return t
}
