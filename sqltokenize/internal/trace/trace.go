// Package trace pretty-prints a folded token window for test failure
// output. It is test-only: nothing on the detection hot path imports it.
//
// This package deliberately has no dependency on sqltokenize itself
// (sqltokenize's own tests are the caller, and this is an internal
// package of sqltokenize — importing it back here would be a cycle).
// Callers project each token's kind name and value down to an Entry
// before calling Dump.
package trace

import (
	"fmt"
	"strings"

	"github.com/alecthomas/repr"
)

// Entry is one token's printable projection: its kind name (e.g. from
// TokenKind.String()) and its decoded value.
type Entry struct {
	Kind string
	Val  string
}

// Dump renders entries as one repr.String-quoted line per token, prefixed
// with its kind, so a failing fold assertion shows the whole window at a
// glance instead of one opaque struct dump.
func Dump(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "[%d] %-14s %s\n", i, e.Kind, repr.String(e.Val))
	}
	return b.String()
}
