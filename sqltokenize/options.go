package sqltokenize

import (
	"github.com/sirupsen/logrus"
)

// Option configures a Detector built by NewDetector. An optional builder
// exposes a custom keyword-lookup callback, used by tests to inject
// behaviour without touching the embedded keyword table.
type Option func(*Detector)

// Detector runs single SQLi attempts (one dialect/quote-context pair per
// Detect call) with a configured keyword lookup. The zero value is not
// usable; construct one with NewDetector.
type Detector struct {
	lookup      LookupFunc
	log         *logrus.Logger
	customTable bool
}

// NewDetector builds a Detector with DefaultLookup unless overridden by
// WithLookup. The logger defaults to logrus.StandardLogger and is only
// ever touched at construction time — Detect itself does no logging and no
// other I/O.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{lookup: DefaultLookup, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(d)
	}
	if d.lookup == nil {
		d.lookup = DefaultLookup
		d.customTable = false
	}
	d.log.WithField("custom_lookup", d.customTable).Debug("sqltokenize: detector configured")
	return d
}

// WithLogger substitutes the logger used for construction-time diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(d *Detector) {
		if log != nil {
			d.log = log
		}
	}
}

// WithLookup substitutes the keyword-table lookup callback, for tests that
// need to observe or override classification decisions without touching
// the embedded table.
func WithLookup(lookup LookupFunc) Option {
	return func(d *Detector) {
		if lookup != nil {
			d.lookup = lookup
			d.customTable = true
		}
	}
}

// Detect runs flags as a single attempt and returns its fingerprint. Use
// the root injectguard package's DetectSQLi for the full multi-attempt
// protocol; this is the single-attempt primitive it's built from.
func (d *Detector) Detect(input string, flags Flags) Fingerprint {
	return Detect(input, flags, d.lookup)
}

// Lookup exposes the configured lookup callback, e.g. for the classifier's
// blacklist check outside a full Detect call.
func (d *Detector) Lookup() LookupFunc { return d.lookup }
