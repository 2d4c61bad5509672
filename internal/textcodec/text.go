// Package textcodec encodes text values per §4.5: a single-byte UTF-8
// codepoint takes the compact CHAR form, everything else takes the
// length-prefixed STRING form.
package textcodec

import (
	"unicode/utf8"

	"github.com/NeuroJSON/bjdata/endian"
	"github.com/NeuroJSON/bjdata/internal/buffer"
	"github.com/NeuroJSON/bjdata/internal/marker"
	"github.com/NeuroJSON/bjdata/internal/numcodec"
)

// Encode writes s as CHAR when it is exactly one byte long and that byte
// is a valid single-byte UTF-8 rune (ASCII), otherwise as STRING with a
// length-prefixed UTF-8 payload.
func Encode(buf *buffer.OutputBuffer, engine endian.EndianEngine, s string) error {
	if len(s) == 1 && utf8.RuneStart(s[0]) && s[0] < utf8.RuneSelf {
		if err := buf.WriteByte(marker.Char); err != nil {
			return err
		}

		return buf.WriteByte(s[0])
	}

	if err := buf.WriteByte(marker.String); err != nil {
		return err
	}

	if err := numcodec.EncodeLength(buf, engine, len(s)); err != nil {
		return err
	}

	return buf.Write([]byte(s))
}
