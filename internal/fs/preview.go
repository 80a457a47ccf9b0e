package fs

import (
	"bytes"
	"io"
	"os"
	"unicode"
	"unicode/utf8"
)

const (
	previewLimit                 = 64 * 1024
	nonPrintableThresholdPercent = 30
)

// Preview returns a bounded text snippet of the file at path, best effort.
// The second return is false for directories, unreadable files and content
// that does not look like text.
func Preview(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	buf := make([]byte, previewLimit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", false
	}
	data := buf[:n]

	if !looksLikeText(data) {
		return "", false
	}
	return string(data), true
}

// looksLikeText sniffs the content: a NUL byte or too many non-printable
// runes marks it as binary.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}

	total, nonPrintable := 0, 0
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		i += size
		total++
		if r == utf8.RuneError && size == 1 {
			nonPrintable++
			continue
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			nonPrintable++
		}
	}
	return nonPrintable*100 <= total*nonPrintableThresholdPercent
}
