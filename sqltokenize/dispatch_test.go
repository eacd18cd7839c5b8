package sqltokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchBasics(t *testing.T) {
	assert.Equal(t, pkWord, dispatch('a'))
	assert.Equal(t, pkWord, dispatch('Z'))
	assert.Equal(t, pkWord, dispatch('_'))
	assert.Equal(t, pkNumber, dispatch('0'))
	assert.Equal(t, pkNumber, dispatch('9'))
	assert.Equal(t, pkWhite, dispatch(' '))
	assert.Equal(t, pkWhite, dispatch('\t'))
	assert.Equal(t, pkWhite, dispatch(0xa0))
	assert.Equal(t, pkCharSingle, dispatch('\''))
	assert.Equal(t, pkDoubleQuote, dispatch('"'))
	assert.Equal(t, pkTick, dispatch('`'))
	assert.Equal(t, pkDash, dispatch('-'))
	assert.Equal(t, pkSlash, dispatch('/'))
	assert.Equal(t, pkHash, dispatch('#'))
	assert.Equal(t, pkColon, dispatch(':'))
	assert.Equal(t, pkMoney, dispatch('$'))
	assert.Equal(t, pkVariable, dispatch('@'))
	assert.Equal(t, pkSemicolon, dispatch(';'))
	assert.Equal(t, pkComma, dispatch(','))
	assert.Equal(t, pkLeftParen, dispatch('('))
	assert.Equal(t, pkRightParen, dispatch(')'))
}

func TestDispatchHighBytesDefaultToWord(t *testing.T) {
	for b := 0x80; b <= 0xff; b++ {
		if b == 0xa0 {
			assert.Equal(t, pkWhite, dispatch(byte(b)), "0xa0 is the documented high-byte whitespace exception")
			continue
		}
		assert.Equal(t, pkWord, dispatch(byte(b)), "byte 0x%x should dispatch to word", b)
	}
}

func TestDispatchOperatorBytes(t *testing.T) {
	for _, b := range []byte{'=', '+', '*', '%', '~', '!', '^'} {
		assert.Equal(t, pkOperator1, dispatch(b))
	}
	for _, b := range []byte{'<', '>', '|', '&'} {
		assert.Equal(t, pkOperator2, dispatch(b))
	}
}
