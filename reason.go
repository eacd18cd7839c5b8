package injectguard

import (
	"fmt"
	"strings"

	"github.com/vippsas/injectguard/sqltokenize"
)

// AttemptDiagnostic records why a single dialect/quote-context attempt
// took an early-exit path during tokenization or folding. It is never
// returned as a Go error — DetectSQLi and DetectXSS always return a plain
// bool — but DetectSQLiTrace exposes it for tests that need to assert
// *why* an input folded the way it did.
type AttemptDiagnostic struct {
	Dialect     Dialect
	QuoteCtx    QuoteContext
	Reason      sqltokenize.Reason
	Fingerprint string
}

func (d AttemptDiagnostic) String() string {
	return fmt.Sprintf("attempt{dialect=%s quote=%s}: %s (fingerprint=%q)",
		d.Dialect, d.QuoteCtx, d.Reason.Code, d.Fingerprint)
}

// AttemptTrace is the ordered list of attempts DetectSQLiTrace ran before
// reaching a decision.
type AttemptTrace []AttemptDiagnostic

func (t AttemptTrace) String() string {
	var b strings.Builder
	for i, d := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.String())
	}
	return b.String()
}
