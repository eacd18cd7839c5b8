// Package injectguard detects SQL-injection and cross-site-scripting
// payloads in arbitrary byte strings. Both detectors are pure, synchronous
// functions: no I/O, safe for concurrent use since every call builds its
// own throwaway state. Each call allocates that state and some scratch
// values; detection is not allocation-free.
package injectguard

import (
	"strings"

	"github.com/vippsas/injectguard/htmltokenize"
	"github.com/vippsas/injectguard/sqltokenize"
	"github.com/vippsas/injectguard/xssclassify"
)

// Dialect names a SQL dialect attempted during detection.
type Dialect int

const (
	DialectANSI Dialect = iota
	DialectMySQL
)

func (d Dialect) String() string {
	if d == DialectMySQL {
		return "mysql"
	}
	return "ansi"
}

func (d Dialect) flag() sqltokenize.Flags {
	if d == DialectMySQL {
		return sqltokenize.DialectMySQL
	}
	return sqltokenize.DialectANSI
}

// QuoteContext names the quote context a tokenization attempt starts in.
type QuoteContext int

const (
	QuoteContextNone QuoteContext = iota
	QuoteContextSingle
	QuoteContextDouble
)

func (q QuoteContext) String() string {
	switch q {
	case QuoteContextSingle:
		return "single"
	case QuoteContextDouble:
		return "double"
	default:
		return "none"
	}
}

func (q QuoteContext) flag() sqltokenize.Flags {
	switch q {
	case QuoteContextSingle:
		return sqltokenize.QuoteSingle
	case QuoteContextDouble:
		return sqltokenize.QuoteDouble
	default:
		return sqltokenize.QuoteNone
	}
}

// SqliResult is the outcome of DetectSQLi.
type SqliResult struct {
	IsInjection bool
	Fingerprint string
}

// XssResult is the outcome of DetectXSS.
type XssResult struct {
	IsInjection bool
}

// DetectSQLi classifies input as a SQL-injection attempt, running the
// dialect/quote-context attempt protocol. It builds a detector with the
// embedded keyword table; use NewSQLiDetector to supply a custom lookup
// (test-only).
func DetectSQLi(input []byte) SqliResult {
	return NewSQLiDetector().DetectSQLi(input)
}

// DetectSQLiTrace runs the same protocol as DetectSQLi but also returns
// the ordered trace of every attempt made, for tests that need to assert
// *why* a decision was reached.
func DetectSQLiTrace(input []byte) (SqliResult, AttemptTrace) {
	return NewSQLiDetector().DetectSQLiTrace(input)
}

// DetectXSS classifies input as a cross-site-scripting attempt, walking
// the HTML5 tokenizer from each of the five start states in
// htmltokenize.StartStates, one of which is the plain data state.
func DetectXSS(input []byte) XssResult {
	for _, start := range htmltokenize.StartStates {
		if xssclassify.Classify(input, start) {
			return XssResult{IsInjection: true}
		}
	}
	return XssResult{IsInjection: false}
}

// SQLiDetector wraps a sqltokenize.Detector with the multi-attempt
// protocol. The zero value is not usable; construct with NewSQLiDetector.
type SQLiDetector struct {
	inner *sqltokenize.Detector
}

// SQLiOption configures a SQLiDetector.
type SQLiOption func(*sqltokenize.Detector)

// WithLookup supplies a custom keyword-lookup callback (test-only).
func WithLookup(lookup sqltokenize.LookupFunc) SQLiOption {
	return SQLiOption(sqltokenize.WithLookup(lookup))
}

// NewSQLiDetector builds a SQLiDetector, optionally customised via
// WithLookup.
func NewSQLiDetector(opts ...SQLiOption) *SQLiDetector {
	tokOpts := make([]sqltokenize.Option, len(opts))
	for i, o := range opts {
		tokOpts[i] = sqltokenize.Option(o)
	}
	return &SQLiDetector{inner: sqltokenize.NewDetector(tokOpts...)}
}

// DetectSQLi runs the full attempt protocol and returns the first positive
// match, or the last-attempted fingerprint if none matched.
func (d *SQLiDetector) DetectSQLi(input []byte) SqliResult {
	result, _ := d.DetectSQLiTrace(input)
	return result
}

// DetectSQLiTrace is DetectSQLi plus the ordered attempt trace.
func (d *SQLiDetector) DetectSQLiTrace(input []byte) (SqliResult, AttemptTrace) {
	if len(input) == 0 {
		return SqliResult{}, nil
	}

	var trace AttemptTrace
	var last sqltokenize.Fingerprint

	run := func(dialect Dialect, qc QuoteContext) sqltokenize.Fingerprint {
		flags := dialect.flag() | qc.flag()
		fp := d.inner.Detect(string(input), flags)
		trace = append(trace, AttemptDiagnostic{
			Dialect:     dialect,
			QuoteCtx:    qc,
			Reason:      fp.Reason,
			Fingerprint: fp.Value,
		})
		last = fp
		return fp
	}

	// Attempt 1: {quote-none, ANSI}.
	fp := run(DialectANSI, QuoteContextNone)
	if fp.IsInjection {
		return SqliResult{IsInjection: true, Fingerprint: fp.Value}, trace
	}

	// Attempt 1': {quote-none, MySQL}, only if MySQL-specific comment
	// tokens were observed.
	if fp.Stats.CommentDDX > 0 || fp.Stats.CommentHash > 0 {
		fp = run(DialectMySQL, QuoteContextNone)
		if fp.IsInjection {
			return SqliResult{IsInjection: true, Fingerprint: fp.Value}, trace
		}
	}

	// Attempt 2: {quote-single, ANSI}, only if input contains a single
	// quote.
	if strings.IndexByte(string(input), '\'') >= 0 {
		fp = run(DialectANSI, QuoteContextSingle)
		if fp.IsInjection {
			return SqliResult{IsInjection: true, Fingerprint: fp.Value}, trace
		}
		if fp.Stats.CommentDDX > 0 || fp.Stats.CommentHash > 0 {
			fp = run(DialectMySQL, QuoteContextSingle)
			if fp.IsInjection {
				return SqliResult{IsInjection: true, Fingerprint: fp.Value}, trace
			}
		}
	}

	// Attempt 3: {quote-double, MySQL}, only if input contains a double
	// quote.
	if strings.IndexByte(string(input), '"') >= 0 {
		fp = run(DialectMySQL, QuoteContextDouble)
		if fp.IsInjection {
			return SqliResult{IsInjection: true, Fingerprint: fp.Value}, trace
		}
	}

	return SqliResult{IsInjection: false, Fingerprint: last.Value}, trace
}
