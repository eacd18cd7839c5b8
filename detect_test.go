package injectguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/injectguard/sqltokenize"
)

func TestDetectSQLiEmptyInput(t *testing.T) {
	got := DetectSQLi(nil)
	assert.False(t, got.IsInjection)
	assert.Equal(t, "", got.Fingerprint)
}

func TestDetectSQLiBenignSelect(t *testing.T) {
	got := DetectSQLi([]byte("SELECT * FROM users WHERE id = 1"))
	assert.False(t, got.IsInjection)
}

func TestDetectSQLiBenignPlainWords(t *testing.T) {
	got := DetectSQLi([]byte("hello world"))
	assert.False(t, got.IsInjection)
}

func TestDetectSQLiTautology(t *testing.T) {
	got := DetectSQLi([]byte("1' OR '1'='1"))
	require.True(t, got.IsInjection)
	assert.Equal(t, "s&sos", got.Fingerprint)
}

func TestDetectSQLiStackedCommentTruncation(t *testing.T) {
	got := DetectSQLi([]byte("1;--"))
	require.True(t, got.IsInjection)
	assert.Equal(t, "n;c", got.Fingerprint)
}

// TestDetectSQLiStackedDropTable is the spec's named scenario 4: a stacked
// query that smuggles a DDL statement behind a semicolon and truncates the
// rest with a dash comment. The folded window fills at MaxTokens before the
// trailing "--" is reached, so the comment itself never makes it into the
// fingerprint; the DDL keyword plus its unmerged two-word target name is
// blacklisted instead.
func TestDetectSQLiStackedDropTable(t *testing.T) {
	got := DetectSQLi([]byte("1; DROP TABLE users--"))
	require.True(t, got.IsInjection)
	assert.Equal(t, "n;knn", got.Fingerprint)
}

// TestDetectSQLiBacktickQuoteHash is the spec's named scenario 3
// (backtick-n-quote-hash-quote), an explicit regression test for a
// historical divergence point in tick/quote-context handling: under the
// quote-single reparse attempt the leading backtick is swallowed into the
// opening quote's body, leaving a string/operator/string shape that
// collapses to the blacklisted "sos" fingerprint.
func TestDetectSQLiBacktickQuoteHash(t *testing.T) {
	got := DetectSQLi([]byte("`n'#'"))
	require.True(t, got.IsInjection)
	assert.Equal(t, "sos", got.Fingerprint)
}

func TestDetectSQLiTraceRecordsEveryAttempt(t *testing.T) {
	_, trace := DetectSQLiTrace([]byte("1' OR '1'='1"))
	require.NotEmpty(t, trace)
	last := trace[len(trace)-1]
	assert.Equal(t, QuoteContextSingle, last.QuoteCtx)
}

func TestDetectXSSScriptTag(t *testing.T) {
	got := DetectXSS([]byte("<script>alert('xss')</script>"))
	assert.True(t, got.IsInjection)
}

func TestDetectXSSImgOnerror(t *testing.T) {
	got := DetectXSS([]byte("<img src=x onerror=alert(1)>"))
	assert.True(t, got.IsInjection)
}

func TestDetectXSSJavascriptHref(t *testing.T) {
	got := DetectXSS([]byte(`<a href="javascript:alert(1)">x</a>`))
	assert.True(t, got.IsInjection)
}

func TestDetectXSSConditionalComment(t *testing.T) {
	got := DetectXSS([]byte("<!--[if IE]><script>alert(1)</script><![endif]-->"))
	assert.True(t, got.IsInjection)
}

func TestDetectXSSBenignText(t *testing.T) {
	got := DetectXSS([]byte("hello world"))
	assert.False(t, got.IsInjection)
}

func TestNewSQLiDetectorWithCustomLookup(t *testing.T) {
	var calls int
	lookup := func(word []byte, category sqltokenize.LookupKind) sqltokenize.TokenKind {
		calls++
		if category == sqltokenize.LookupFingerprint && string(word) == "nn" {
			return sqltokenize.KindFingerprint
		}
		return sqltokenize.DefaultLookup(word, category)
	}
	d := NewSQLiDetector(WithLookup(lookup))
	got := d.DetectSQLi([]byte("hello world"))
	require.True(t, got.IsInjection, "custom lookup blacklists the bareword-bareword shape")
	assert.Greater(t, calls, 0)
}
