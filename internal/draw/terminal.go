package draw

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// maxChunkSize is the maximum bytes to write at once. Stays under a typical
// 1500 byte MTU so a frame leaves an SSH channel in whole packets.
const maxChunkSize = 1400

// writeChunked writes data to w in pieces of at most maxChunkSize bytes.
func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(w, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// cursorTo appends a CUP sequence for the 1-based (row, col) to b.
func cursorTo(b *strings.Builder, scratch []byte, row, col int) {
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(scratch[:0], int64(row), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(scratch[:0], int64(col), 10))
	b.WriteByte('H')
}

// ChunkWriter accumulates a whole frame of terminal output (canvas cells,
// border, HUD text) and hands it to the terminal on Flush.
type ChunkWriter struct {
	buf     strings.Builder
	out     *bufio.Writer
	scratch [20]byte
	offCol  int
	offRow  int
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and
// offsetRow are added to all WriteAt coordinates.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// OffsetCol returns the column offset added by WriteAt.
func (cw *ChunkWriter) OffsetCol() int { return cw.offCol }

// OffsetRow returns the row offset added by WriteAt.
func (cw *ChunkWriter) OffsetRow() int { return cw.offRow }

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends s unchanged.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s at a 1-based position relative to the offset.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cursorTo(&cw.buf, cw.scratch[:], row+cw.offRow, col+cw.offCol)
	cw.buf.WriteString(s)
}

// Flush sends the frame and starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	if err := writeChunked(cw.out, data); err != nil {
		return err
	}
	return cw.out.Flush()
}
