package xssclassify

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/vippsas/injectguard/htmltokenize"
)

// attrClass is the rolling attribute class the classifier tracks while
// walking a tag's attributes.
type attrClass int

const (
	attrNone attrClass = iota
	attrBlack
	attrURL
	attrStyle
	attrIndirect
)

// blackTags names elements whose mere presence is dangerous, regardless of
// attributes. Keyed by atom.Atom rather than a bare string so the set is
// anchored to the same element vocabulary golang.org/x/net/html's own
// tokenizer and foreign-content rules use, instead of a second
// hand-maintained spelling of the HTML element list.
var blackTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Embed:    true,
	atom.Style:    true,
	atom.Applet:   true,
	atom.Meta:     true,
	atom.Link:     true,
	atom.Base:     true,
	atom.Form:     true,
	atom.Frame:    true,
	atom.Frameset: true,
}

// blackTagNames mirrors blackTags as plain strings, for the NUL-skipping
// fallback comparison isBlackTagName runs when a tag name carries an
// embedded NUL byte that atom.Lookup can't see past.
var blackTagNames = []string{
	"script", "iframe", "object", "embed", "style",
	"applet", "meta", "link", "base", "form", "frame", "frameset",
}

// blackTagPrefixes catches whole families of foreign-content elements
// (SVG, MathML, legacy XSL) without enumerating every member: any of
// these namespaces can carry an embedded <script>/annotation-xml element
// that HTML5's foreign-content parsing rules would otherwise let through
// raw-text rules don't cover.
var blackTagPrefixes = []string{"svg", "math", "xsl"}

// isBlackAttr reports event-handler-style attributes (any name starting
// with "on"): their presence alone implies active content.
func isBlackAttr(name string) bool {
	return strings.HasPrefix(name, "on")
}

// urlAttrs are attributes whose value is a URL and must be scanned for a
// dangerous scheme.
var urlAttrs = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"data":       true,
	"poster":     true,
	"background": true,
	"cite":       true,
	"longdesc":   true,
	"usemap":     true,
	"xlink:href": true,
}

// styleAttrs are attributes whose value is interpreted as CSS, itself
// capable of carrying active content (legacy `expression()`, `behavior:`,
// and `-moz-binding:`).
var styleAttrs = map[string]bool{
	"style": true,
}

// indirectAttrs name another attribute by value rather than carrying
// content themselves (SVG animation's `attributeName`); the classifier
// flags such a value when it names an event-handler attribute.
var indirectAttrs = map[string]bool{
	"attributename": true,
}

// dangerousSchemes are URL schemes that execute script or exfiltrate data
// when used in a url-class attribute.
var dangerousSchemes = []string{
	"JAVASCRIPT:",
	"DATA:",
	"VBSCRIPT:",
	"VIEW-SOURCE:",
}

func classifyAttr(name string) attrClass {
	lower := strings.ToLower(name)
	switch {
	case isBlackAttr(lower):
		return attrBlack
	case urlAttrs[lower]:
		return attrURL
	case styleAttrs[lower]:
		return attrStyle
	case indirectAttrs[lower]:
		return attrIndirect
	}
	if !strings.ContainsRune(name, 0x00) {
		return attrNone
	}
	// name carries an embedded NUL a real HTML parser would strip before
	// comparing; the exact-match lookups above can't see past it, so fall
	// back to a NUL-skipping comparison against the same attribute sets.
	switch {
	case matchesSkipNULPrefix(name, "on"):
		return attrBlack
	case matchesSkipNULAny(name, urlAttrs):
		return attrURL
	case matchesSkipNULAny(name, styleAttrs):
		return attrStyle
	case matchesSkipNULAny(name, indirectAttrs):
		return attrIndirect
	}
	return attrNone
}

func isBlackTagName(name string) bool {
	lower := strings.ToLower(name)
	if blackTags[atom.Lookup([]byte(lower))] {
		return true
	}
	for _, prefix := range blackTagPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	if !strings.ContainsRune(name, 0x00) {
		return false
	}
	for _, cand := range blackTagNames {
		if htmltokenize.CaseInsensitiveEqualSkipNUL([]byte(name), []byte(cand)) {
			return true
		}
	}
	for _, prefix := range blackTagPrefixes {
		if matchesSkipNULPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// nulAwarePrefixSpan returns the byte length of the shortest prefix of s
// containing exactly n non-NUL bytes, so that prefix (NULs and all) can be
// compared against a fixed-length target with CaseInsensitiveEqualSkipNUL.
// ok is false if s has fewer than n non-NUL bytes.
func nulAwarePrefixSpan(s string, n int) (span int, ok bool) {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] != 0x00 {
			count++
		}
		if count == n {
			return i + 1, true
		}
	}
	return 0, false
}

// matchesSkipNULPrefix reports whether name's leading non-NUL bytes spell
// prefix, case-insensitively, ignoring NUL bytes interleaved anywhere
// within that span (e.g. "o\x00nerror" against "on").
func matchesSkipNULPrefix(name, prefix string) bool {
	span, ok := nulAwarePrefixSpan(name, len(prefix))
	return ok && htmltokenize.CaseInsensitiveEqualSkipNUL([]byte(name[:span]), []byte(prefix))
}

// matchesSkipNULAny reports whether name equals any key of candidates,
// case-insensitively and ignoring embedded NUL bytes in name.
func matchesSkipNULAny(name string, candidates map[string]bool) bool {
	nb := []byte(name)
	for cand := range candidates {
		if htmltokenize.CaseInsensitiveEqualSkipNUL(nb, []byte(cand)) {
			return true
		}
	}
	return false
}
