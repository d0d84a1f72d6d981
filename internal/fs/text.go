package fs

import (
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// PreviewReadLimit caps how much of a file the preview pipeline reads.
const PreviewReadLimit = 64 * 1024

type byteOrder int

const (
	orderNone byteOrder = iota
	orderUTF8BOM
	orderUTF16LE
	orderUTF16BE
)

// ReadFileHead returns up to limit bytes from the beginning of path, and
// whether the file holds more than that.
func ReadFileHead(path string, limit int) ([]byte, bool, error) {
	if limit <= 0 {
		return nil, false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	// one extra byte tells a file of exactly limit bytes from a longer one
	buf, err := io.ReadAll(io.LimitReader(f, int64(limit)+1))
	if err != nil {
		return nil, false, err
	}
	if len(buf) > limit {
		return buf[:limit], true, nil
	}
	return buf, false, nil
}

// DecodeText returns content as a UTF-8 string when it is text: plain UTF-8,
// UTF-8 with a BOM, or BOM-marked UTF-16. When truncated is set a rune split
// by the read limit is dropped before validating.
func DecodeText(content []byte, truncated bool) (string, bool) {
	switch detectByteOrder(content) {
	case orderUTF8BOM:
		content = content[3:]
	case orderUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian, truncated)
	case orderUTF16BE:
		return decodeUTF16(content, unicode.BigEndian, truncated)
	}

	if truncated {
		content = trimPartialRune(content)
	}
	if !utf8.Valid(content) {
		return "", false
	}
	return string(content), true
}

func detectByteOrder(sample []byte) byteOrder {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return orderUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return orderUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return orderUTF16BE
		}
	}
	return orderNone
}

func decodeUTF16(content []byte, endian unicode.Endianness, truncated bool) (string, bool) {
	if truncated && len(content)%2 == 1 {
		content = content[:len(content)-1]
	}
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// trimPartialRune drops at most one incomplete trailing UTF-8 sequence.
func trimPartialRune(content []byte) []byte {
	for back := 1; back <= utf8.UTFMax && back <= len(content); back++ {
		b := content[len(content)-back]
		if b < 0x80 {
			return content
		}
		if utf8.RuneStart(b) {
			if r, size := utf8.DecodeRune(content[len(content)-back:]); r == utf8.RuneError && size <= 1 {
				return content[:len(content)-back]
			}
			return content
		}
	}
	return content
}
