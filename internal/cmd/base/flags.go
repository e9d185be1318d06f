package base

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"
)

// FlagSet wraps flag.FlagSet to render flag help the way cli.Command
// expects it.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned, never printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help lists every flag with its usage.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	n := 0
	f.VisitAll(func(fl *flag.Flag) {
		if n == 0 {
			buf.WriteString("\n\nOptions:\n")
		}
		n++
		fmt.Fprintf(&buf, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&buf, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&buf, "\n      %s\n", strings.ReplaceAll(fl.Usage, "\n", "\n      "))
	})
	return buf.String()
}
