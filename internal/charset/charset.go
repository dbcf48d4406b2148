// Package charset turns uploaded text of unknown encoding into UTF-8.
package charset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
)

// sniffLen is how much of the input detection looks at.
const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	name    string
	decoder func() *encoding.Decoder
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8, nil},
	{[]byte{0xFF, 0xFE}, UTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder},
	{[]byte{0xFE, 0xFF}, UTF16BE, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder},
}

// single-byte charsets chardet may report, mapped to their decoders.
// ISO-8859-1 is read as windows-1252, its superset.
var heuristics = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-9":   charmap.ISO8859_9,
	"windows-1250": charmap.Windows1250,
}

// Decode returns a reader yielding r as UTF-8 and the name of the charset
// it was read as. A byte order mark wins, then valid UTF-8, then chardet's
// best guess, then windows-1252.
func Decode(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing charset: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.decoder == nil {
			_, _ = br.Discard(len(bom.prefix))
			return br, bom.name, nil
		}

		return transform.NewReader(br, bom.decoder()), bom.name, nil
	}

	if utf8.Valid(trimPartialRune(head)) {
		return br, UTF8, nil
	}

	if best, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if best.Charset == UTF8 {
			return br, UTF8, nil
		}

		if enc, ok := heuristics[best.Charset]; ok {
			return transform.NewReader(br, enc.NewDecoder()), best.Charset, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), Windows1252, nil
}

// trimPartialRune drops a multi-byte sequence cut off by the sniff window.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
