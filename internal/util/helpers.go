package util

import (
	"fmt"
	"io"
	"mime"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

var wordDecoder = &mime.WordDecoder{CharsetReader: charsetReader}

// DecodeWords decodes RFC 2047 encoded words (=?UTF-8?B?...?=) in s.
// Undecodable input is returned unchanged.
func DecodeWords(s string) string {
	if s == "" {
		return s
	}
	out, err := wordDecoder.DecodeHeader(s)
	if err != nil {
		return s
	}
	return out
}

// charsetReader handles the charsets mime.WordDecoder does not know itself.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// TruncateRunes cuts s to at most n runes without splitting a character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	return string(rs[:n])
}
