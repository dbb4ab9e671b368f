// Package canary embeds a uniquely identifiable marker string invisibly into
// text so a document owner can later detect whether an AI system echoed the
// document back.
package canary

import (
	"strings"
	"unicode/utf8"
)

// The marker is encoded bit-by-bit into zero-width runes and framed by a word
// joiner on each side. None of these render in editors or browsers, and they
// survive plain-text round trips byte-for-byte.
const (
	zeroBit = '\u200b' // zero-width space
	oneBit  = '\u200c' // zero-width non-joiner
	frame   = '\u2060' // word joiner
)

// Encode converts a marker into its invisible zero-width representation.
func Encode(marker string) string {
	if marker == "" {
		return ""
	}
	var b strings.Builder
	b.WriteRune(frame)
	for _, by := range []byte(marker) {
		for bit := 7; bit >= 0; bit-- {
			if by&(1<<uint(bit)) != 0 {
				b.WriteRune(oneBit)
			} else {
				b.WriteRune(zeroBit)
			}
		}
	}
	b.WriteRune(frame)
	return b.String()
}

// Inject appends the encoded marker to the text.
func Inject(text, marker string) string {
	return text + Encode(marker)
}

// Detect scans the text for an encoded marker and decodes it. The second
// return is false when no well-formed marker is present.
func Detect(text string) (string, bool) {
	runes := []rune(text)
	start := -1
	for i, r := range runes {
		if r != frame {
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if marker, ok := decodeBits(runes[start+1 : i]); ok {
			return marker, true
		}
		start = i
	}
	return "", false
}

// Strip removes every zero-width encoding rune from the text.
func Strip(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case zeroBit, oneBit, frame:
			return -1
		}
		return r
	}, text)
}

func decodeBits(bits []rune) (string, bool) {
	if len(bits) == 0 || len(bits)%8 != 0 {
		return "", false
	}
	out := make([]byte, 0, len(bits)/8)
	var cur byte
	for i, r := range bits {
		cur <<= 1
		switch r {
		case oneBit:
			cur |= 1
		case zeroBit:
		default:
			return "", false
		}
		if i%8 == 7 {
			out = append(out, cur)
			cur = 0
		}
	}
	if !utf8.Valid(out) {
		return "", false
	}
	return string(out), true
}
