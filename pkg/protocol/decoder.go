package protocol

import (
	"bytes"
	"strings"
)

// LineDecoder splits an incoming byte stream into complete protocol
// lines. Bytes from partial reads accumulate until a delimiter arrives;
// there is no upper bound on accumulator growth beyond what the peer
// sends without a newline.
type LineDecoder struct {
	buf []byte
}

// Feed appends received bytes and returns every complete line now
// available, in arrival order and without the trailing delimiter.
// Invalid UTF-8 sequences are replaced rather than rejected.
func (d *LineDecoder) Feed(data []byte) []string {
	d.buf = append(d.buf, data...)

	var lines []string
	for {
		idx := bytes.IndexByte(d.buf, Delimiter)
		if idx < 0 {
			return lines
		}
		line := strings.ToValidUTF8(string(d.buf[:idx]), "�")
		lines = append(lines, line)
		d.buf = d.buf[idx+1:]
	}
}

// Pending reports how many bytes are buffered awaiting a delimiter.
func (d *LineDecoder) Pending() int {
	return len(d.buf)
}
