// Package xssclassify implements the XSS classifier: it drives
// htmltokenize from each of the five start contexts and inspects the
// resulting tokens for shapes known to indicate active content.
package xssclassify

import (
	"bytes"
	"strings"

	"github.com/vippsas/injectguard/htmltokenize"
)

// Classify reports whether input contains an XSS payload when tokenized
// from start.
func Classify(input []byte, start htmltokenize.StartState) bool {
	s := htmltokenize.NewState(string(input), start)
	attr := attrNone

	for {
		tok, ok := s.NextToken()
		if !ok {
			return false
		}
		text := tok.Text(input)
		switch tok.Kind {
		case htmltokenize.KindDoctype:
			return true

		case htmltokenize.KindTagNameOpen:
			if isBlackTagName(string(text)) {
				return true
			}
			attr = attrNone

		case htmltokenize.KindAttrName:
			attr = classifyAttr(string(text))

		case htmltokenize.KindAttrValue:
			switch attr {
			case attrBlack, attrStyle:
				return true
			case attrURL:
				if isDangerousURLValue(text) {
					return true
				}
			case attrIndirect:
				if isBlackAttr(strings.ToLower(strings.TrimSpace(string(text)))) {
					return true
				}
			}
			attr = attrNone

		case htmltokenize.KindTagComment:
			if isDangerousComment(text) {
				return true
			}
			attr = attrNone

		default:
			attr = attrNone
		}
	}
}

// isDangerousURLValue reports whether a url-class attribute value begins
// with a dangerous scheme, after HTML-entity decoding and leading
// whitespace skipping.
func isDangerousURLValue(value []byte) bool {
	for _, scheme := range dangerousSchemes {
		if htmltokenize.DecodeStartsWithFold(scheme, value) {
			return true
		}
	}
	return false
}

// isDangerousComment checks the comment-quirk table: a comment body is
// dangerous if it contains a backtick (IE's backtick-terminated comment
// escape), opens a conditional-comment block, declares itself XML, or
// smuggles an external entity/import.
func isDangerousComment(body []byte) bool {
	if bytes.ContainsRune(body, '`') {
		return true
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("[if")) {
		return true
	}
	if bytes.HasPrefix(trimmed, []byte("xml")) || bytes.HasPrefix(trimmed, []byte("XML")) {
		return true
	}
	upper := bytes.ToUpper(body)
	if bytes.Contains(upper, []byte("IMPORT")) {
		return true
	}
	if bytes.Contains(upper, []byte("ENTITY")) {
		return true
	}
	return false
}
