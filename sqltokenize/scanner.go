package sqltokenize

import (
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// Stats are the tokenizer/folder counters. CommentDDX/CommentDDW/CommentHash
// drive the MySQL-dialect re-attempt decision in the multi-attempt
// detection protocol.
type Stats struct {
	Tokens      int
	Folds       int
	CommentDDX  int
	CommentDDW  int
	CommentHash int
}

// State is the tokenizer/folder working set. It is created fresh per
// detection attempt, lives on the caller's stack, and is never shared
// across calls.
type State struct {
	input  string
	offset int
	flags  Flags

	tokens  [tokenVecLen]Token
	current int

	stats  Stats
	reason Reason

	lookup LookupFunc

	consumedInitialQuote bool
	inConditionalComment bool
}

// NewState initializes a State over input with the given flags. lookup may
// be nil, in which case DefaultLookup is used.
func NewState(input string, flags Flags, lookup LookupFunc) *State {
	if lookup == nil {
		lookup = DefaultLookup
	}
	return &State{input: input, flags: flags, lookup: lookup}
}

func (s *State) Offset() int    { return s.offset }
func (s *State) Stats() Stats   { return s.stats }
func (s *State) Reason() Reason { return s.reason }

// NextToken scans at most one token and advances the cursor. It returns the
// produced token and true, or a zero Token and false at
// end of input. The tokenizer is the only place `current`/`offset` are
// advanced; parsers never touch them directly except through State's own
// helper methods.
func (s *State) NextToken() (Token, bool) {
	if s.offset == 0 && !s.consumedInitialQuote {
		qc := s.flags.QuoteContext()
		if qc == QuoteSingle || qc == QuoteDouble {
			s.consumedInitialQuote = true
			tok := s.scanInitialQuoteString(qc)
			s.stats.Tokens++
			return tok, true
		}
	}
	s.consumedInitialQuote = true

	for s.offset < len(s.input) {
		if s.inConditionalComment && s.peekPrefix("*/") {
			s.offset += 2
			s.inConditionalComment = false
			continue
		}

		b := s.input[s.offset]
		tok, produced := s.parseOne(dispatch(b))
		if produced {
			s.stats.Tokens++
			return tok, true
		}
	}
	return Token{}, false
}

// nextTokenInto scans the next token directly into tokens[slot] — current is
// the index of the slot the tokenizer writes into next — used by the folder
// to fill specific positions in its working window.
func (s *State) nextTokenInto(slot int) (Token, bool) {
	s.current = slot
	return s.NextToken()
}

func (s *State) peekPrefix(p string) bool {
	end := s.offset + len(p)
	if end > len(s.input) {
		return false
	}
	return s.input[s.offset:end] == p
}

func (s *State) byteAt(i int) (byte, bool) {
	if i < 0 || i >= len(s.input) {
		return 0, false
	}
	return s.input[i], true
}

// parseOne dispatches to the parser for kind, starting at s.offset.
func (s *State) parseOne(kind parserKind) (Token, bool) {
	switch kind {
	case pkWhite:
		s.scanWhite()
		return Token{}, false
	case pkWord:
		return s.scanWordLike()
	case pkVariable:
		return s.scanVariable()
	case pkNumber:
		return s.scanNumber()
	case pkOperator1:
		return s.scanOperator1()
	case pkOperator2:
		return s.scanOperator2()
	case pkCharSingle:
		return s.scanQuoted('\'', KindString)
	case pkDoubleQuote:
		return s.scanQuoted('"', KindString)
	case pkTick:
		return s.scanQuoted('`', KindBareword)
	case pkDash:
		return s.scanDash()
	case pkSlash:
		return s.scanSlash()
	case pkBackslash:
		return s.single(KindBackslash)
	case pkHash:
		return s.scanHash()
	case pkColon:
		return s.scanColon()
	case pkMoney:
		return s.scanMoney()
	case pkComma:
		return s.single(KindComma)
	case pkSemicolon:
		return s.single(KindSemicolon)
	case pkLeftParen:
		return s.single(KindLeftParen)
	case pkRightParen:
		return s.single(KindRightParen)
	case pkLeftBrace:
		return s.single(KindLeftBrace)
	case pkRightBrace:
		return s.single(KindRightBrace)
	case pkDot:
		return s.single(KindDot)
	default:
		return s.single(KindUnknown)
	}
}

func (s *State) newToken() *Token {
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = s.offset
	return t
}

func (s *State) finish(t *Token) Token {
	t.Len = s.offset - t.Pos
	return *t
}

// single consumes exactly one byte and emits a token of kind.
func (s *State) single(kind TokenKind) (Token, bool) {
	t := s.newToken()
	t.Kind = kind
	s.offset++
	return s.finish(t), true
}

func (s *State) scanWhite() {
	for s.offset < len(s.input) && isWhiteByte(s.input[s.offset]) {
		s.offset++
	}
}

// isWhiteByte reports whether b is ASCII whitespace (0x09-0x0d, 0x20), NUL,
// or the single high byte 0xa0.
func isWhiteByte(b byte) bool {
	switch b {
	case 0x00, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x20, 0xa0:
		return true
	}
	return false
}

// identRune decodes the rune at s.input[i:] and reports whether it may
// continue an identifier (ASCII word bytes, or a high-byte Unicode
// identifier-continue rune per xid.Continue). It returns the encoded width
// so callers can advance correctly over multi-byte runes.
func identRune(input string, i int) (ok bool, width int) {
	b := input[i]
	if b < 0x80 {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_', b == '$':
			return true, 1
		}
		return false, 1
	}
	r, w := utf8.DecodeRuneInString(input[i:])
	if r == utf8.RuneError {
		return false, 1
	}
	return xid.Continue(r), w
}

// scanIdentifierRun advances s.offset over a run of identifier-continue
// bytes starting at s.offset (the first, already-validated byte is assumed
// to be part of the identifier and is not re-checked).
func (s *State) scanIdentifierRun() {
	s.offset++ // first byte already classified as identifier-start by dispatch
	for s.offset < len(s.input) {
		ok, w := identRune(s.input, s.offset)
		if !ok {
			return
		}
		s.offset += w
	}
}

// classifyWord looks word up across the word/type/operator/function
// categories in turn, returning the first match (keyword, function,
// sqltype, operator, logic-op) or bareword if none of the tables claim it.
// word is the token's already-uppercased Val slice; passing it straight
// through avoids a re-uppercase and a string/[]byte round-trip per lookup.
func (s *State) classifyWord(word []byte) TokenKind {
	if k := s.lookup(word, LookupWord); k != KindNone {
		return k
	}
	if k := s.lookup(word, LookupType); k != KindNone {
		return k
	}
	if k := s.lookup(word, LookupOperator); k != KindNone {
		return k
	}
	if k := s.lookup(word, LookupFunction); k != KindNone {
		return k
	}
	return KindBareword
}

// scanWordLike handles both plain identifiers and the dialect-flavoured
// quoted-string prefixes N'...', X'...', B'...', E'...', Q'...'. The prefix
// forms are only recognised when the letter is immediately followed by a
// single quote; otherwise they fall through to ordinary identifier
// scanning.
func (s *State) scanWordLike() (Token, bool) {
	start := s.offset
	b := s.input[start]

	if nb, ok := s.byteAt(start + 1); ok && nb == '\'' {
		switch b {
		case 'N', 'n':
			s.offset += 2
			return s.finishQuotedPrefix(start, '\'', KindString)
		case 'X', 'x':
			s.offset += 2
			return s.finishQuotedPrefix(start, '\'', KindString)
		case 'B', 'b':
			s.offset += 2
			return s.finishQuotedPrefix(start, '\'', KindString)
		case 'E', 'e':
			s.offset += 2
			return s.finishQuotedPrefix(start, '\'', KindString)
		case 'Q', 'q':
			s.offset += 2
			return s.finishQuotedPrefix(start, '\'', KindString)
		}
	}

	s.scanIdentifierRun()
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.Len = s.offset - start
	t.SetVal(s.input[start:s.offset])
	t.Kind = s.classifyWord(t.Val[:t.ValLen])
	return *t, true
}

// finishQuotedPrefix scans the body of a prefixed string literal (e.g.
// N'...') whose prefix+quote has already been consumed, up to the matching
// end quote, honouring the doubled-quote escape plus (in the MySQL dialect)
// backslash escapes, matching scanQuoted's body logic.
func (s *State) finishQuotedPrefix(start int, end byte, kind TokenKind) (Token, bool) {
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.StrOpen = end
	ok := s.consumeQuotedBody(end)
	if ok {
		t.StrClose = end
	} else {
		t.StrClose = noneByte
	}
	t.Kind = kind
	t.Len = s.offset - start
	return *t, true
}

// scanQuoted scans a quote/quote-pair-delimited token starting at s.offset
// (the opening quote has not yet been consumed). Used for '...', "...", and
// `...`.
func (s *State) scanQuoted(quote byte, kind TokenKind) (Token, bool) {
	start := s.offset
	s.offset++ // consume opening quote
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.StrOpen = quote
	if s.consumeQuotedBody(quote) {
		t.StrClose = quote
	} else {
		t.StrClose = noneByte
	}
	t.Kind = kind
	t.Len = s.offset - start
	return *t, true
}

// consumeQuotedBody advances s.offset past the body of a quote-delimited
// token up to and including its closing `end` byte. Doubled `end` bytes
// escape a literal occurrence (ANSI rule, always honoured); in the MySQL
// dialect a backslash also escapes the following byte. Returns false
// (offset left at EOF) if no terminator was found.
func (s *State) consumeQuotedBody(end byte) bool {
	mysqlEscapes := s.flags.IsMySQL()
	for s.offset < len(s.input) {
		b := s.input[s.offset]
		if mysqlEscapes && b == '\\' && s.offset+1 < len(s.input) {
			s.offset += 2
			continue
		}
		if b == end {
			if nb, ok := s.byteAt(s.offset + 1); ok && nb == end {
				s.offset += 2
				continue
			}
			s.offset++
			return true
		}
		s.offset++
	}
	return false
}

// scanInitialQuoteString handles the initial-quote-context pre-condition:
// when the caller requests an initial quote context, the whole input is
// parsed as a string that is already open, so the first token covers
// input[0:] up to (and including) the first unescaped matching quote.
func (s *State) scanInitialQuoteString(qc Flags) Token {
	quote := byte('\'')
	if qc == QuoteDouble {
		quote = '"'
	}
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = 0
	t.StrOpen = quote
	if s.consumeQuotedBody(quote) {
		t.StrClose = quote
	} else {
		t.StrClose = noneByte
	}
	t.Kind = KindString
	t.Len = s.offset - t.Pos
	return *t
}

// scanNumber handles integer/float/scientific/hex/binary literals. If
// identifier bytes trail the numeric run with no intervening boundary, the
// whole run is reclassified as a bareword.
func (s *State) scanNumber() (Token, bool) {
	start := s.offset

	if s.peekPrefix("0x") || s.peekPrefix("0X") {
		s.offset += 2
		for s.offset < len(s.input) && isHexByte(s.input[s.offset]) {
			s.offset++
		}
	} else if s.peekPrefix("0b") || s.peekPrefix("0B") {
		s.offset += 2
		for s.offset < len(s.input) && (s.input[s.offset] == '0' || s.input[s.offset] == '1') {
			s.offset++
		}
	} else {
		for s.offset < len(s.input) && isDigit(s.input[s.offset]) {
			s.offset++
		}
		if s.offset < len(s.input) && s.input[s.offset] == '.' {
			s.offset++
			for s.offset < len(s.input) && isDigit(s.input[s.offset]) {
				s.offset++
			}
		}
		if s.offset < len(s.input) && (s.input[s.offset] == 'e' || s.input[s.offset] == 'E') {
			save := s.offset
			s.offset++
			if s.offset < len(s.input) && (s.input[s.offset] == '+' || s.input[s.offset] == '-') {
				s.offset++
			}
			digitsStart := s.offset
			for s.offset < len(s.input) && isDigit(s.input[s.offset]) {
				s.offset++
			}
			if s.offset == digitsStart {
				// no exponent digits after all; it wasn't an exponent.
				s.offset = save
			}
		}
	}

	kind := KindNumber
	if s.offset < len(s.input) {
		if ok, _ := identRune(s.input, s.offset); ok {
			// trailing identifier bytes: the whole run becomes a bareword.
			for s.offset < len(s.input) {
				ok, w := identRune(s.input, s.offset)
				if !ok {
					break
				}
				s.offset += w
			}
			kind = KindBareword
		}
	}

	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.Len = s.offset - start
	t.Kind = kind
	if kind == KindBareword {
		t.SetVal(s.input[start:s.offset])
	}
	return *t, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isHexByte(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanOperator1 handles single-byte operators, also recognising a few
// two-byte forms that start with an operator1 byte (e.g. "!=", "!~", "!!",
// "!*").
func (s *State) scanOperator1() (Token, bool) {
	start := s.offset
	b := s.input[start]
	if b == '!' {
		if nb, ok := s.byteAt(start + 1); ok {
			switch nb {
			case '=', '~', '!', '*':
				s.offset += 2
				return s.finishOperator(start, KindOperator)
			}
		}
	}
	kind := KindOperator
	if b == '+' || b == '~' {
		kind = KindUnaryOperator
	}
	s.offset++
	return s.finishOperator(start, kind)
}

// twoByteOperators enumerates the two-byte operator spellings recognised
// explicitly, rather than left to fall through to single-byte operators.
var twoByteOperators = map[string]TokenKind{
	"<=": KindOperator,
	">=": KindOperator,
	"<>": KindOperator,
	"!=": KindOperator,
	"||": KindOperator,
	"&&": KindLogicOperator,
	"<<": KindOperator,
	">>": KindOperator,
	"@>": KindOperator,
	"<@": KindOperator,
}

// scanOperator2 handles the '<', '>', '|', '&' family: single-byte
// operators that may combine into one of twoByteOperators.
func (s *State) scanOperator2() (Token, bool) {
	start := s.offset
	if start+1 < len(s.input) {
		pair := s.input[start : start+2]
		if kind, ok := twoByteOperators[pair]; ok {
			s.offset += 2
			return s.finishOperator(start, kind)
		}
	}
	s.offset++
	return s.finishOperator(start, KindOperator)
}

func (s *State) finishOperator(start int, kind TokenKind) (Token, bool) {
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.Len = s.offset - start
	t.Kind = kind
	t.SetVal(s.input[start:s.offset])
	return *t, true
}

// commentDashSpace marks a KindComment token's Count field when it was
// produced by a dash comment ("--") immediately followed by a space or tab
// (the canonical, properly-spaced ANSI comment form), as opposed to '--'
// at end-of-input or before a line break, or the MySQL-specific '--X'
// (no space) quirk. The
// whitelist's dash-comment exception in isWhitelisted consults this.
const commentDashSpace = 1

// scanDash handles '-' as subtraction/unary-minus, or the start of a '--'
// line comment. '--' followed by a space, tab, newline, carriage return or
// end of input is the portable ANSI-style comment. '--X' (any other
// following byte) is the MySQL-specific quirk and bumps comment_ddx; '--'
// followed by a space or tab while the MySQL dialect flag is already active
// additionally bumps comment_ddw.
func (s *State) scanDash() (Token, bool) {
	start := s.offset
	if !s.peekPrefix("--") {
		s.offset++
		return s.finishOperator(start, KindUnaryOperator)
	}
	s.offset += 2
	nb, has := s.byteAt(s.offset)
	isANSIComment := !has || nb == ' ' || nb == '\t' || nb == '\n' || nb == '\r'
	isSpaced := has && (nb == ' ' || nb == '\t')
	if isANSIComment {
		if s.flags.IsMySQL() && isSpaced {
			s.stats.CommentDDW++
		}
	} else {
		s.stats.CommentDDX++
	}
	s.consumeLineComment()
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.Len = s.offset - start
	t.Kind = KindComment
	if isSpaced {
		t.Count = commentDashSpace
	}
	return *t, true
}

func (s *State) consumeLineComment() {
	for s.offset < len(s.input) && s.input[s.offset] != '\n' {
		s.offset++
	}
}

// scanSlash handles '/' as division, or a C-style /* ... */ comment,
// including MySQL's "conditional comment" /*! ... */ and its version-gated
// form /*!50000 ... */ whose inner content is exposed as ordinary tokens.
func (s *State) scanSlash() (Token, bool) {
	start := s.offset
	if !s.peekPrefix("/*") {
		s.offset++
		return s.finishOperator(start, KindOperator)
	}
	s.offset += 2

	if nb, ok := s.byteAt(s.offset); ok && nb == '!' {
		s.offset++
		for s.offset < len(s.input) && isDigit(s.input[s.offset]) {
			s.offset++
		}
		s.inConditionalComment = true
		return Token{}, false
	}

	for s.offset < len(s.input) {
		if s.peekPrefix("*/") {
			s.offset += 2
			break
		}
		s.offset++
	}
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.Len = s.offset - start
	t.Kind = KindComment
	return *t, true
}

// scanHash handles '#': a MySQL line comment, or (outside the MySQL
// dialect) a bareword-terminator operator.
func (s *State) scanHash() (Token, bool) {
	start := s.offset
	if s.flags.IsMySQL() {
		s.stats.CommentHash++
		s.consumeLineComment()
		t := &s.tokens[s.current]
		t.reset()
		t.Pos = start
		t.Len = s.offset - start
		t.Kind = KindComment
		return *t, true
	}
	s.offset++
	return s.finishOperator(start, KindOperator)
}

// scanColon handles ':' as either the start of a ':name' variable
// reference, PostgreSQL's '::' cast operator, or a bare colon token.
func (s *State) scanColon() (Token, bool) {
	start := s.offset
	if nb, ok := s.byteAt(start + 1); ok {
		if nb == ':' || nb == '=' {
			s.offset += 2
			return s.finishOperator(start, KindOperator)
		}
		if isIdentStart(nb) {
			s.offset++
			s.scanIdentifierRun()
			t := &s.tokens[s.current]
			t.reset()
			t.Pos = start
			t.Len = s.offset - start
			t.Kind = KindVariable
			t.Count = 1
			t.SetVal(s.input[start:s.offset])
			return *t, true
		}
	}
	s.offset++
	return s.single2(start, KindColon)
}

func (s *State) single2(start int, kind TokenKind) (Token, bool) {
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.Len = s.offset - start
	t.Kind = kind
	return *t, true
}

// scanMoney handles '$': a positional parameter ($1, $2, ...), or (when not
// followed by a digit) an unknown single-byte token. Dollar-quoted strings
// ($tag$...$tag$) are a PostgreSQL-flavoured extension also rooted here.
func (s *State) scanMoney() (Token, bool) {
	start := s.offset
	if nb, ok := s.byteAt(start + 1); ok && isDigit(nb) {
		s.offset++
		for s.offset < len(s.input) && isDigit(s.input[s.offset]) {
			s.offset++
		}
		t := &s.tokens[s.current]
		t.reset()
		t.Pos = start
		t.Len = s.offset - start
		t.Kind = KindVariable
		t.Count = 2
		return *t, true
	}

	// $tag$...$tag$ dollar-quoted string.
	tagEnd := start + 1
	for tagEnd < len(s.input) && s.input[tagEnd] != '$' && identContinueASCII(s.input[tagEnd]) {
		tagEnd++
	}
	if tagEnd < len(s.input) && s.input[tagEnd] == '$' {
		tag := s.input[start : tagEnd+1] // "$tag$" including both dollars
		bodyStart := tagEnd + 1
		closeIdx := indexFrom(s.input, tag, bodyStart)
		t := &s.tokens[s.current]
		t.reset()
		t.Pos = start
		t.StrOpen = '$'
		if closeIdx >= 0 {
			s.offset = closeIdx + len(tag)
			t.StrClose = '$'
		} else {
			s.offset = len(s.input)
			t.StrClose = noneByte
		}
		t.Kind = KindString
		t.Len = s.offset - start
		return *t, true
	}

	s.offset++
	return s.single2(start, KindUnknown)
}

// isIdentStart reports whether b may start an identifier: ASCII
// letter/underscore, or any high byte (high bytes begin identifiers).
func isIdentStart(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
		return true
	case b >= 0x80:
		return true
	}
	return false
}

func identContinueASCII(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := indexOf(s[from:], substr)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func indexOf(s, substr string) int {
	n, m := len(s), len(substr)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == substr {
			return i
		}
	}
	return -1
}

// scanVariable handles '@'/'@@'-prefixed identifiers (session vs global
// SQL variables).
func (s *State) scanVariable() (Token, bool) {
	start := s.offset
	count := 1
	s.offset++ // consume '@'
	if nb, ok := s.byteAt(s.offset); ok && nb == '@' {
		count = 2
		s.offset++
	}
	for s.offset < len(s.input) {
		ok, w := identRune(s.input, s.offset)
		if !ok {
			break
		}
		s.offset += w
	}
	t := &s.tokens[s.current]
	t.reset()
	t.Pos = start
	t.Len = s.offset - start
	t.Kind = KindVariable
	t.Count = count
	t.SetVal(s.input[start:s.offset])
	return *t, true
}
