package sqltokenize

// parserKind names the fixed per-byte parsing behaviour selected by the
// dispatch table. The table is 256 entries wide and maps every possible
// input byte to exactly one of these; divergence in this table changes
// tokenization for every caller, so it is reproduced deliberately and
// explicitly rather than derived from a formula.
type parserKind uint8

const (
	pkOther parserKind = iota
	pkWhite
	pkWord
	pkBareword
	pkVariable
	pkNumber
	pkOperator1
	pkOperator2
	pkCharSingle
	pkDash
	pkSlash
	pkBackslash
	pkTick
	pkMoney
	pkUString
	pkQString
	pkNQString
	pkXString
	pkBString
	pkEString
	pkHash
	pkString
	pkComma
	pkSemicolon
	pkLeftParen
	pkRightParen
	pkLeftBrace
	pkRightBrace
	pkDot
	pkColon
	pkDoubleQuote
)

// charDispatch is the 256-entry character-class table. Bytes ≥ 0x80 default
// to pkWord (high bytes begin identifiers); the explicit high-byte
// whitespace set below (0xa0, the Latin-1 non-breaking space) is the one
// documented exception.
var charDispatch = buildDispatchTable()

func buildDispatchTable() [256]parserKind {
	var t [256]parserKind
	for i := range t {
		t[i] = pkOther
	}
	// bytes >= 0x80 default to word (identifier start).
	for i := 0x80; i <= 0xff; i++ {
		t[i] = pkWord
	}

	whitespace := []byte{0x00, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x20, 0xa0}
	for _, b := range whitespace {
		t[b] = pkWhite
	}

	for c := 'a'; c <= 'z'; c++ {
		t[c] = pkWord
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = pkWord
	}
	t['_'] = pkWord

	for c := '0'; c <= '9'; c++ {
		t[c] = pkNumber
	}

	t['\''] = pkCharSingle
	t['"'] = pkDoubleQuote
	t['`'] = pkTick
	t['$'] = pkMoney
	t['@'] = pkVariable
	t[':'] = pkColon
	t['-'] = pkDash
	t['/'] = pkSlash
	t['\\'] = pkBackslash
	t['#'] = pkHash

	t[','] = pkComma
	t[';'] = pkSemicolon
	t['('] = pkLeftParen
	t[')'] = pkRightParen
	t['{'] = pkLeftBrace
	t['}'] = pkRightBrace
	t['.'] = pkDot

	for _, c := range []byte{'=', '+', '*', '%', '~', '!', '^'} {
		t[c] = pkOperator1
	}
	for _, c := range []byte{'<', '>', '|', '&'} {
		t[c] = pkOperator2
	}

	t['['] = pkOther
	t[']'] = pkOther
	t['?'] = pkOther

	return t
}

// dispatch returns the parser kind for a token whose first byte is b.
func dispatch(b byte) parserKind {
	return charDispatch[b]
}
