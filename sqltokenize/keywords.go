package sqltokenize

import "sort"

// LookupKind scopes a keyword-table lookup to one category: words, SQL
// types, operators, functions, or fingerprints. The category is
// classifier-specific; several letters may resolve the same word under
// different categories.
//
// A reference implementation might keep one combined, binary-searched table
// and disambiguate by an auxiliary category tag per entry; this port keeps
// one sorted, binary-searched table per category instead. Both give the
// identical observable contract (lookup(word, category) -> stored kind, or
// none), and splitting by category removes the need for a combined
// sentinel/category byte on every entry. This simplification is recorded in
// DESIGN.md.
type LookupKind int

const (
	LookupWord LookupKind = iota
	LookupType
	LookupOperator
	LookupFunction
	LookupFingerprint
)

// keywordEntry is one {word, kind} pair. Word is always stored
// pre-uppercased.
type keywordEntry struct {
	Word string
	Kind TokenKind
}

// LookupFunc is the signature of the keyword-table lookup callback. The
// public API exposes a builder that lets tests substitute this with a
// custom lookup callback.
type LookupFunc func(word []byte, category LookupKind) TokenKind

// table is a sorted, binary-searchable keyword table for one LookupKind.
type table struct {
	entries []keywordEntry
}

func newTable(entries []keywordEntry) *table {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Word < entries[j].Word })
	return &table{entries: entries}
}

// find does a length-capped, case-already-folded binary search.
func (t *table) find(word string) (TokenKind, bool) {
	if len(word) > maxWordLength {
		word = word[:maxWordLength]
	}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Word >= word })
	if i < len(t.entries) && t.entries[i].Word == word {
		return t.entries[i].Kind, true
	}
	return KindNone, false
}

var (
	wordTable        = newTable(keywordWords)
	typeTable        = newTable(keywordTypes)
	operatorTable    = newTable(keywordOperators)
	functionTable    = newTable(keywordFunctions)
	fingerprintTable = newTable(keywordFingerprints)
)

// DefaultLookup is the built-in binary-search lookup over the embedded
// keyword table. The match is ASCII case-insensitive: word is uppercased
// into a scratch buffer before the search.
func DefaultLookup(word []byte, category LookupKind) TokenKind {
	var buf [64]byte
	up := buf[:0]
	for _, b := range word {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		up = append(up, b)
	}
	s := string(up)
	switch category {
	case LookupWord:
		if k, ok := wordTable.find(s); ok {
			return k
		}
	case LookupType:
		if k, ok := typeTable.find(s); ok {
			return k
		}
	case LookupOperator:
		if k, ok := operatorTable.find(s); ok {
			return k
		}
	case LookupFunction:
		if k, ok := functionTable.find(s); ok {
			return k
		}
	case LookupFingerprint:
		// "v1" format: fingerprints are stored with a leading '0' and
		// uppercased.
		key := fingerprintKey(s)
		if k, ok := fingerprintTable.find(key); ok {
			return k
		}
	}
	return KindNone
}

// fingerprintKey builds the "v1" lookup key for a raw (mixed-case letters,
// verbatim punctuation) fingerprint string: a leading '0' byte, then the
// fingerprint with its ASCII letters uppercased.
func fingerprintKey(fp string) string {
	buf := make([]byte, 0, len(fp)+1)
	buf = append(buf, '0')
	for i := 0; i < len(fp); i++ {
		c := fp[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// isBlacklisted reports whether fp (raw fingerprint bytes) is present in the
// fingerprint blacklist table, via the lookup func in effect.
func isBlacklisted(lookup LookupFunc, fp string) bool {
	if fp == "" {
		return false
	}
	return lookup([]byte(fp), LookupFingerprint) == KindFingerprint
}
