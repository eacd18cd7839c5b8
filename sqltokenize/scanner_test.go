package sqltokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, input string, flags Flags) []Token {
	t.Helper()
	s := NewState(input, flags, nil)
	var out []Token
	for {
		tok, ok := s.NextToken()
		if !ok {
			break
		}
		out = append(out, tok)
	}
	return out
}

func TestNextTokenWhitespaceSkipped(t *testing.T) {
	toks := scanAll(t, "   \t\n  1", DialectANSI|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindNumber, toks[0].Kind)
}

func TestNextTokenKeywordAndBareword(t *testing.T) {
	toks := scanAll(t, "SELECT foo", DialectANSI|QuoteNone)
	require.Len(t, toks, 2)
	assert.Equal(t, KindKeyword, toks[0].Kind)
	assert.Equal(t, "SELECT", toks[0].ValString())
	assert.Equal(t, KindBareword, toks[1].Kind)
	assert.Equal(t, "FOO", toks[1].ValString())
}

func TestNextTokenStrings(t *testing.T) {
	toks := scanAll(t, "'hello'", DialectANSI|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindString, toks[0].Kind)
	assert.Equal(t, byte('\''), toks[0].StrOpen)
	assert.Equal(t, byte('\''), toks[0].StrClose)
}

func TestNextTokenDoubledQuoteEscape(t *testing.T) {
	toks := scanAll(t, "'it''s'", DialectANSI|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindString, toks[0].Kind)
	assert.Equal(t, byte('\''), toks[0].StrClose)
	assert.Equal(t, len("'it''s'"), toks[0].Len)
}

func TestNextTokenUnterminatedString(t *testing.T) {
	toks := scanAll(t, "'unterminated", DialectANSI|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindString, toks[0].Kind)
	assert.Equal(t, noneByte, toks[0].StrClose)
}

func TestNextTokenMySQLBackslashEscape(t *testing.T) {
	toks := scanAll(t, `'a\'b'`, DialectMySQL|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, byte('\''), toks[0].StrClose)
}

func TestNextTokenNPrefixedString(t *testing.T) {
	toks := scanAll(t, "N'hello'", DialectANSI|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindString, toks[0].Kind)
}

func TestNextTokenNumbers(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"123", KindNumber},
		{"0x1F", KindNumber},
		{"0b101", KindNumber},
		{"1.5", KindNumber},
		{"1.5e10", KindNumber},
		{"1.5e+10", KindNumber},
		{"123abc", KindBareword},
	}
	for _, c := range cases {
		toks := scanAll(t, c.input, DialectANSI|QuoteNone)
		require.Len(t, toks, 1, c.input)
		assert.Equal(t, c.kind, toks[0].Kind, c.input)
	}
}

func TestNextTokenDashComment(t *testing.T) {
	toks := scanAll(t, "1 -- comment", DialectANSI|QuoteNone)
	require.Len(t, toks, 2)
	assert.Equal(t, KindComment, toks[1].Kind)
}

func TestNextTokenDashCommentMySQLNoSpace(t *testing.T) {
	s := NewState("1 --comment", DialectMySQL|QuoteNone, nil)
	for {
		_, ok := s.NextToken()
		if !ok {
			break
		}
	}
	assert.Equal(t, 1, s.stats.CommentDDX)
}

func TestNextTokenSlashStarComment(t *testing.T) {
	toks := scanAll(t, "1 /* hi */ 2", DialectANSI|QuoteNone)
	require.Len(t, toks, 3)
	assert.Equal(t, KindComment, toks[1].Kind)
}

func TestNextTokenMySQLConditionalCommentExposesInner(t *testing.T) {
	toks := scanAll(t, "/*!50000 SELECT*/", DialectMySQL|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindKeyword, toks[0].Kind)
}

func TestNextTokenHashComment(t *testing.T) {
	toks := scanAll(t, "1 #comment", DialectMySQL|QuoteNone)
	require.Len(t, toks, 2)
	assert.Equal(t, KindComment, toks[1].Kind)
}

func TestNextTokenHashOperatorOutsideMySQL(t *testing.T) {
	toks := scanAll(t, "1#2", DialectANSI|QuoteNone)
	require.Len(t, toks, 3)
	assert.Equal(t, KindOperator, toks[1].Kind)
}

func TestNextTokenVariable(t *testing.T) {
	toks := scanAll(t, "@myvar @@global", DialectANSI|QuoteNone)
	require.Len(t, toks, 2)
	assert.Equal(t, KindVariable, toks[0].Kind)
	assert.Equal(t, 1, toks[0].Count)
	assert.Equal(t, KindVariable, toks[1].Kind)
	assert.Equal(t, 2, toks[1].Count)
}

func TestNextTokenNamedParamVariable(t *testing.T) {
	toks := scanAll(t, ":name", DialectANSI|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindVariable, toks[0].Kind)
}

func TestNextTokenDoubleColonCast(t *testing.T) {
	toks := scanAll(t, "1::int", DialectANSI|QuoteNone)
	require.Len(t, toks, 3)
	assert.Equal(t, KindOperator, toks[1].Kind)
	assert.Equal(t, "::", toks[1].ValString())
}

func TestNextTokenPositionalParam(t *testing.T) {
	toks := scanAll(t, "$1", DialectANSI|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindVariable, toks[0].Kind)
	assert.Equal(t, 2, toks[0].Count)
}

func TestNextTokenDollarQuotedString(t *testing.T) {
	toks := scanAll(t, "$tag$hello$tag$", DialectANSI|QuoteNone)
	require.Len(t, toks, 1)
	assert.Equal(t, KindString, toks[0].Kind)
	assert.Equal(t, byte('$'), toks[0].StrClose)
}

func TestNextTokenTwoByteOperators(t *testing.T) {
	cases := []string{"<=", ">=", "<>", "!=", "||", "&&", "<<", ">>", ":="}
	for _, c := range cases {
		toks := scanAll(t, c, DialectANSI|QuoteNone)
		require.Len(t, toks, 1, c)
		assert.Contains(t, []TokenKind{KindOperator, KindLogicOperator}, toks[0].Kind, c)
	}
}

func TestNextTokenPunctuation(t *testing.T) {
	toks := scanAll(t, "(),;.{}", DialectANSI|QuoteNone)
	kinds := []TokenKind{KindLeftParen, KindRightParen, KindComma, KindSemicolon, KindDot, KindLeftBrace, KindRightBrace}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind)
	}
}

func TestNextTokenInitialQuoteContext(t *testing.T) {
	s := NewState(`OR 1=1'`, QuoteSingle|DialectANSI, nil)
	tok, ok := s.NextToken()
	require.True(t, ok)
	assert.Equal(t, KindString, tok.Kind)
	assert.Equal(t, byte('\''), tok.StrOpen)
	assert.Equal(t, byte('\''), tok.StrClose)
}
