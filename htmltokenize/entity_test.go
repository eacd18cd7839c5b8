package htmltokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeStartsWithFoldLiteral(t *testing.T) {
	assert.True(t, DecodeStartsWithFold("JAVASCRIPT:", []byte("javascript:alert(1)")))
	assert.True(t, DecodeStartsWithFold("JAVASCRIPT:", []byte("JavaScript:alert(1)")))
	assert.False(t, DecodeStartsWithFold("JAVASCRIPT:", []byte("http://example.com")))
}

func TestDecodeStartsWithFoldNumericEntity(t *testing.T) {
	// &#106; is 'j'; the rest is spelled out literally.
	assert.True(t, DecodeStartsWithFold("JAVASCRIPT:", []byte("&#106;avascript:alert(1)")))
}

func TestDecodeStartsWithFoldHexEntity(t *testing.T) {
	// &#x6A; is also 'j'.
	assert.True(t, DecodeStartsWithFold("JAVASCRIPT:", []byte("&#x6A;avascript:alert(1)")))
}

func TestDecodeStartsWithFoldSkipsLeadingWhitespace(t *testing.T) {
	assert.True(t, DecodeStartsWithFold("JAVASCRIPT:", []byte("  \t\njavascript:alert(1)")))
}

func TestDecodeStartsWithFoldShortInputFails(t *testing.T) {
	assert.False(t, DecodeStartsWithFold("JAVASCRIPT:", []byte("java")))
}

func TestCaseInsensitiveEqualSkipNUL(t *testing.T) {
	assert.True(t, CaseInsensitiveEqualSkipNUL([]byte("onerror"), []byte("ONERROR")))
	assert.True(t, CaseInsensitiveEqualSkipNUL([]byte("on\x00error"), []byte("ONERROR")))
	assert.False(t, CaseInsensitiveEqualSkipNUL([]byte("onerror"), []byte("onclick")))
}
