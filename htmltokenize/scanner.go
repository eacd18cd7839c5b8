package htmltokenize

import "strings"

// State is the HTML5 tokenizer's working set, analogous to
// sqltokenize.State: created fresh per attempt, lives on the caller's
// stack, mutated in place as NextToken advances offset.
type State struct {
	input string
	offset int
	mode   mode

	pendingRawTextTag string // set when a <script>/<style> start tag just closed
	rawTextTag        string // which raw-text element we're currently inside
}

// NewState builds a tokenizer over input, starting in start. The VALUE_*
// start states model being invoked mid attribute-value, as the classifier
// does when re-parsing input from an assumed injection point.
func NewState(input string, start StartState) *State {
	s := &State{input: input}
	switch start {
	case StateValueNoQuote:
		s.mode = modeAttrValueUnquoted
	case StateValueSingleQuote:
		s.mode = modeAttrValueSingleQuoted
	case StateValueDoubleQuote:
		s.mode = modeAttrValueDoubleQuoted
	case StateValueBackQuote:
		s.mode = modeAttrValueBackQuoted
	default:
		s.mode = modeData
	}
	return s
}

func (s *State) Offset() int { return s.offset }

func (s *State) byteAt(i int) (byte, bool) {
	if i < 0 || i >= len(s.input) {
		return 0, false
	}
	return s.input[i], true
}

func (s *State) peekPrefixFold(p string) bool {
	end := s.offset + len(p)
	if end > len(s.input) {
		return false
	}
	return strings.EqualFold(s.input[s.offset:end], p)
}

func (s *State) peekPrefix(p string) bool {
	end := s.offset + len(p)
	if end > len(s.input) {
		return false
	}
	return s.input[s.offset:end] == p
}

// NextToken scans forward, returning the next classifier-visible token, or
// (Token{}, false) at end of input.
func (s *State) NextToken() (Token, bool) {
	for s.offset < len(s.input) && s.mode != modeDone {
		switch s.mode {
		case modeData:
			if tok, ok := s.stepData(); ok {
				return tok, true
			}
		case modeRawText:
			if tok, ok := s.stepRawText(); ok {
				return tok, true
			}
		case modeTagOpen:
			if tok, ok := s.stepTagOpen(); ok {
				return tok, true
			}
		case modeEndTagOpen:
			if tok, ok := s.stepEndTagOpen(); ok {
				return tok, true
			}
		case modeTagName:
			if tok, ok := s.stepTagName(); ok {
				return tok, true
			}
		case modeBeforeAttrName:
			if tok, ok := s.stepBeforeAttrName(); ok {
				return tok, true
			}
		case modeAttrName:
			if tok, ok := s.stepAttrName(); ok {
				return tok, true
			}
		case modeAfterAttrName:
			s.mode = modeBeforeAttrValueOrNext()
			if tok, ok := s.decideAfterAttrName(); ok {
				return tok, true
			}
		case modeBeforeAttrValue:
			if tok, ok := s.stepBeforeAttrValue(); ok {
				return tok, true
			}
		case modeAttrValueUnquoted:
			if tok, ok := s.stepAttrValueUnquoted(); ok {
				return tok, true
			}
		case modeAttrValueSingleQuoted:
			if tok, ok := s.stepAttrValueQuoted('\''); ok {
				return tok, true
			}
		case modeAttrValueDoubleQuoted:
			if tok, ok := s.stepAttrValueQuoted('"'); ok {
				return tok, true
			}
		case modeAttrValueBackQuoted:
			if tok, ok := s.stepAttrValueQuoted('`'); ok {
				return tok, true
			}
		case modeSelfClosingStartTag:
			if tok, ok := s.stepSelfClosingStartTag(); ok {
				return tok, true
			}
		case modeMarkupDeclarationOpen:
			s.stepMarkupDeclarationOpen()
		case modeCommentStart, modeComment:
			if tok, ok := s.stepComment(); ok {
				return tok, true
			}
		case modeBogusComment:
			if tok, ok := s.stepBogusComment(); ok {
				return tok, true
			}
		case modeDoctype:
			if tok, ok := s.stepDoctype(); ok {
				return tok, true
			}
		case modeCDATA:
			s.stepCDATA()
		default:
			s.offset++
		}
	}
	return Token{}, false
}

// modeBeforeAttrValueOrNext exists only to give decideAfterAttrName a
// readable name; it always resolves to modeBeforeAttrValue, matching the
// HTML5 "after attribute name" -> "before attribute value" transition on
// '='.
func modeBeforeAttrValueOrNext() mode { return modeBeforeAttrValue }

func (s *State) decideAfterAttrName() (Token, bool) {
	b, ok := s.byteAt(s.offset)
	if !ok {
		s.mode = modeDone
		return Token{}, false
	}
	switch b {
	case '=':
		s.offset++
		s.mode = modeBeforeAttrValue
	case '/':
		s.mode = modeSelfClosingStartTag
	case '>':
		s.offset++
		s.mode = s.closeStartTag()
	default:
		s.mode = modeBeforeAttrName
	}
	return Token{}, false
}

// stepData scans plain text until the next '<', which opens a tag,
// comment, doctype, or CDATA section.
func (s *State) stepData() (Token, bool) {
	// data-text is ignored by the classifier; consume it without
	// surfacing a token.
	for s.offset < len(s.input) && s.input[s.offset] != '<' {
		s.offset++
	}
	if s.offset >= len(s.input) {
		s.mode = modeDone
		return Token{}, false
	}
	s.mode = modeTagOpen
	s.offset++ // consume '<'
	return Token{}, false
}

func (s *State) stepTagOpen() (Token, bool) {
	b, ok := s.byteAt(s.offset)
	if !ok {
		s.mode = modeDone
		return Token{}, false
	}
	switch {
	case b == '/':
		s.offset++
		s.mode = modeEndTagOpen
	case b == '!':
		s.offset++
		s.mode = modeMarkupDeclarationOpen
	case isASCIILetter(b):
		s.mode = modeTagName
	default:
		// not a real tag; treat '<' as stray data and resume.
		s.mode = modeData
	}
	return Token{}, false
}

func (s *State) stepEndTagOpen() (Token, bool) {
	b, ok := s.byteAt(s.offset)
	if !ok {
		s.mode = modeDone
		return Token{}, false
	}
	if !isASCIILetter(b) {
		s.mode = modeBogusComment
		return Token{}, false
	}
	start := s.offset
	for s.offset < len(s.input) && isTagNameByte(s.input[s.offset]) {
		s.offset++
	}
	name := start
	nameLen := s.offset - start
	s.skipUntilTagClose()
	s.mode = modeData
	return Token{Kind: KindTagNameClose, Pos: name, Len: nameLen}, true
}

func (s *State) stepTagName() (Token, bool) {
	start := s.offset
	for s.offset < len(s.input) && (isTagNameByte(s.input[s.offset]) || s.input[s.offset] == 0x00) {
		s.offset++
	}
	name := s.input[start:s.offset]
	lower := strings.ToLower(name)
	if rawTextTags[lower] {
		s.pendingRawTextTag = lower
	} else {
		s.pendingRawTextTag = ""
	}
	s.mode = modeBeforeAttrName
	return Token{Kind: KindTagNameOpen, Pos: start, Len: s.offset - start}, true
}

func (s *State) stepBeforeAttrName() (Token, bool) {
	s.skipWhite()
	b, ok := s.byteAt(s.offset)
	if !ok {
		s.mode = modeDone
		return Token{}, false
	}
	switch b {
	case '/':
		s.mode = modeSelfClosingStartTag
	case '>':
		s.offset++
		s.mode = s.closeStartTag()
	default:
		s.mode = modeAttrName
	}
	return Token{}, false
}

func (s *State) stepAttrName() (Token, bool) {
	start := s.offset
	for s.offset < len(s.input) {
		b := s.input[s.offset]
		if isWhite(b) || b == '=' || b == '>' || b == '/' {
			break
		}
		s.offset++
	}
	if s.offset == start {
		// stray byte that can't start an attribute name; skip it.
		s.offset++
		s.mode = modeBeforeAttrName
		return Token{}, false
	}
	nameEnd := s.offset
	s.mode = modeAfterAttrName
	s.skipWhite()
	return Token{Kind: KindAttrName, Pos: start, Len: nameEnd - start}, true
}

func (s *State) stepBeforeAttrValue() (Token, bool) {
	s.skipWhite()
	b, ok := s.byteAt(s.offset)
	if !ok {
		s.mode = modeDone
		return Token{}, false
	}
	switch b {
	case '"':
		s.offset++
		s.mode = modeAttrValueDoubleQuoted
	case '\'':
		s.offset++
		s.mode = modeAttrValueSingleQuoted
	case '`':
		s.offset++
		s.mode = modeAttrValueBackQuoted
	case '>':
		s.offset++
		s.mode = s.closeStartTag()
	default:
		s.mode = modeAttrValueUnquoted
	}
	return Token{}, false
}

func (s *State) stepAttrValueUnquoted() (Token, bool) {
	start := s.offset
	for s.offset < len(s.input) {
		b := s.input[s.offset]
		if isWhite(b) || b == '>' {
			break
		}
		s.offset++
	}
	s.mode = modeBeforeAttrName
	return Token{Kind: KindAttrValue, Pos: start, Len: s.offset - start}, true
}

func (s *State) stepAttrValueQuoted(quote byte) (Token, bool) {
	start := s.offset
	for s.offset < len(s.input) && s.input[s.offset] != quote {
		s.offset++
	}
	tok := Token{Kind: KindAttrValue, Pos: start, Len: s.offset - start}
	if s.offset < len(s.input) {
		s.offset++ // consume closing quote
	}
	s.mode = modeBeforeAttrName
	return tok, true
}

func (s *State) stepSelfClosingStartTag() (Token, bool) {
	b, ok := s.byteAt(s.offset)
	if !ok {
		s.mode = modeDone
		return Token{}, false
	}
	if b != '/' {
		s.mode = modeBeforeAttrName
		return Token{}, false
	}
	s.offset++
	nb, ok := s.byteAt(s.offset)
	if ok && nb == '>' {
		start := s.offset
		s.offset++
		s.mode = modeData
		s.pendingRawTextTag = ""
		return Token{Kind: KindTagNameSelfClose, Pos: start, Len: 0}, true
	}
	s.mode = modeBeforeAttrName
	return Token{}, false
}

// closeStartTag returns the mode to resume in once a start tag's '>' is
// consumed: raw-text mode for <script>/<style>, data otherwise.
func (s *State) closeStartTag() mode {
	if s.pendingRawTextTag != "" {
		s.rawTextTag = s.pendingRawTextTag
		s.pendingRawTextTag = ""
		return modeRawText
	}
	return modeData
}

func (s *State) stepRawText() (Token, bool) {
	closeTag := "</" + s.rawTextTag
	for s.offset < len(s.input) {
		if s.input[s.offset] == '<' && s.peekPrefixFold(closeTag) {
			s.offset += 2
			nameStart := s.offset
			s.offset += len(s.rawTextTag)
			s.skipUntilTagClose()
			s.mode = modeData
			return Token{Kind: KindTagNameClose, Pos: nameStart, Len: len(s.rawTextTag)}, true
		}
		s.offset++
	}
	s.mode = modeDone
	return Token{}, false
}

// stepMarkupDeclarationOpen dispatches '<!' to comment, DOCTYPE, or CDATA.
func (s *State) stepMarkupDeclarationOpen() {
	switch {
	case s.peekPrefix("--"):
		s.offset += 2
		s.mode = modeCommentStart
	case s.peekPrefixFold("DOCTYPE"):
		s.offset += len("DOCTYPE")
		s.mode = modeDoctype
	case s.peekPrefix("[CDATA["):
		s.offset += len("[CDATA[")
		s.mode = modeCDATA
	default:
		s.mode = modeBogusComment
	}
}

// stepComment scans a standard `<!--...-->` comment. IE's backtick-style
// unterminated-comment quirk (a bare backtick closing the comment instead
// of "-->") is honoured alongside the standard terminator.
func (s *State) stepComment() (Token, bool) {
	start := s.offset
	for s.offset < len(s.input) {
		if s.peekPrefix("-->") {
			tok := Token{Kind: KindTagComment, Pos: start, Len: s.offset - start}
			s.offset += 3
			s.mode = modeData
			return tok, true
		}
		if s.input[s.offset] == '`' {
			tok := Token{Kind: KindTagComment, Pos: start, Len: s.offset - start}
			s.offset++
			s.mode = modeData
			return tok, true
		}
		s.offset++
	}
	tok := Token{Kind: KindTagComment, Pos: start, Len: s.offset - start}
	s.mode = modeDone
	return tok, true
}

func (s *State) stepBogusComment() (Token, bool) {
	start := s.offset
	for s.offset < len(s.input) && s.input[s.offset] != '>' {
		s.offset++
	}
	tok := Token{Kind: KindTagComment, Pos: start, Len: s.offset - start}
	if s.offset < len(s.input) {
		s.offset++
	}
	s.mode = modeData
	return tok, true
}

func (s *State) stepDoctype() (Token, bool) {
	start := s.offset
	for s.offset < len(s.input) && s.input[s.offset] != '>' {
		s.offset++
	}
	tok := Token{Kind: KindDoctype, Pos: start, Len: s.offset - start}
	if s.offset < len(s.input) {
		s.offset++
	}
	s.mode = modeData
	return tok, true
}

func (s *State) stepCDATA() {
	for s.offset < len(s.input) {
		if s.peekPrefix("]]>") {
			s.offset += 3
			s.mode = modeData
			return
		}
		s.offset++
	}
	s.mode = modeDone
}

// skipUntilTagClose consumes an end tag's (possible) attribute-free tail
// up to and including '>'; end tags aren't expected to carry attributes
// the classifier cares about.
func (s *State) skipUntilTagClose() {
	for s.offset < len(s.input) && s.input[s.offset] != '>' {
		s.offset++
	}
	if s.offset < len(s.input) {
		s.offset++
	}
}

func (s *State) skipWhite() {
	for s.offset < len(s.input) && isWhite(s.input[s.offset]) {
		s.offset++
	}
}

func isWhite(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isTagNameByte(b byte) bool {
	return isASCIILetter(b) || (b >= '0' && b <= '9') || b == '-' || b == ':'
}
