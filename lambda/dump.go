package lambda

import "github.com/davecgh/go-spew/spew"

var dumper = spew.ConfigState{
	Indent:                  "    ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump returns the full structure of the term, one field per line.
func Dump(t Term) string {
	return dumper.Sdump(t)
}
