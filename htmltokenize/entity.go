package htmltokenize

// DecodeStartsWithFold reports whether hay, after skipping leading
// whitespace/NUL/vertical-tab bytes, skipping NUL/vertical-tab bytes
// embedded between the compared characters, and decoding any numeric HTML
// character references (&#dec; / &#xhex;) it begins with, starts with
// needle under a case-insensitive, byte-wise comparison. needle should
// already be uppercase; hay is compared case-folded.
//
// This is the attribute-value scheme check: `&#106;avascript:` must be
// recognised as starting with "JAVASCRIPT:" just as the literal spelling
// would be.
func DecodeStartsWithFold(needle string, hay []byte) bool {
	i := skipBenign(hay, 0)
	for _, want := range []byte(needle) {
		for i < len(hay) && (hay[i] == 0x00 || hay[i] == 0x0b) {
			i++
		}
		got, next, ok := decodeOne(hay, i)
		if !ok {
			return false
		}
		if upperASCIIByte(got) != want {
			return false
		}
		i = next
	}
	return true
}

// skipBenign advances past leading whitespace, NUL, and vertical-tab
// bytes, which browsers ignore when sniffing a URL scheme.
func skipBenign(hay []byte, i int) int {
	for i < len(hay) {
		switch hay[i] {
		case ' ', '\t', '\n', '\r', 0x00, 0x0b:
			i++
			continue
		}
		break
	}
	return i
}

// decodeOne decodes a single logical character at hay[i:]: a numeric HTML
// entity (&#NN; or &#xHH;) if present, else the raw byte. It returns the
// decoded byte, the index just past what it consumed, and whether a
// character was available at all.
func decodeOne(hay []byte, i int) (b byte, next int, ok bool) {
	if i >= len(hay) {
		return 0, i, false
	}
	if hay[i] != '&' || i+2 >= len(hay) || hay[i+1] != '#' {
		return hay[i], i + 1, true
	}
	j := i + 2
	hex := false
	if j < len(hay) && (hay[j] == 'x' || hay[j] == 'X') {
		hex = true
		j++
	}
	digitsStart := j
	var val int
	for j < len(hay) {
		c := hay[j]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case hex && c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		case hex && c >= 'A' && c <= 'F':
			d = int(c-'A') + 10
		default:
			goto doneDigits
		}
		if hex {
			val = val*16 + d
		} else {
			val = val*10 + d
		}
		j++
	}
doneDigits:
	if j == digitsStart {
		// "&#" not followed by digits; not an entity after all.
		return hay[i], i + 1, true
	}
	if j < len(hay) && hay[j] == ';' {
		j++
	}
	if val > 0xff {
		val &= 0xff
	}
	return byte(val), j, true
}

func upperASCIIByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// CaseInsensitiveEqualSkipNUL compares a and b byte-for-byte,
// case-insensitively, treating NUL bytes in either operand as if they
// were absent.
func CaseInsensitiveEqualSkipNUL(a, b []byte) bool {
	i, j := 0, 0
	for {
		for i < len(a) && a[i] == 0x00 {
			i++
		}
		for j < len(b) && b[j] == 0x00 {
			j++
		}
		aDone, bDone := i >= len(a), j >= len(b)
		if aDone || bDone {
			return aDone == bDone
		}
		if upperASCIIByte(a[i]) != upperASCIIByte(b[j]) {
			return false
		}
		i++
		j++
	}
}
