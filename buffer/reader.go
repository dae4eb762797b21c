package buffer

import (
	"bytes"
	"io"
)

var _ io.ReaderAt = (*PieceTable)(nil)

// ReadAt implements [io.ReaderAt].
func (pt *PieceTable) ReadAt(p []byte, offset int64) (total int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if offset < 0 || offset >= int64(pt.size) {
		return 0, io.EOF
	}

	off := int(offset)
	pieceStart := 0
	for n := pt.pieces.Head(); n != pt.pieces.tail && total < len(p); n = n.next {
		pieceEnd := pieceStart + n.length
		if pieceEnd > off {
			lo := max(off, pieceStart) - pieceStart
			src := pt.getBuf(n.source)[n.off+lo : n.off+n.length]
			c := copy(p[total:], src)
			total += c
			off += c
		}
		pieceStart = pieceEnd
	}

	if total < len(p) {
		err = io.EOF
	}
	return total, err
}

// LineCount returns the number of lines of the document. An empty
// document has one line.
func (pt *PieceTable) LineCount() int {
	lines := 1
	for n := pt.pieces.Head(); n != pt.pieces.tail; n = n.next {
		lines += bytes.Count(pt.getBuf(n.source)[n.off:n.off+n.length], []byte{'\n'})
	}
	return lines
}

// LineStart returns the byte offset where line (zero based) starts. Lines
// past the end of the document map to Len().
func (pt *PieceTable) LineStart(line int) int {
	if line <= 0 {
		return 0
	}

	pieceStart := 0
	for n := pt.pieces.Head(); n != pt.pieces.tail; n = n.next {
		data := pt.getBuf(n.source)[n.off : n.off+n.length]
		pos := 0
		for {
			i := bytes.IndexByte(data[pos:], '\n')
			if i < 0 {
				break
			}
			pos += i + 1
			line--
			if line == 0 {
				return pieceStart + pos
			}
		}
		pieceStart += n.length
	}

	return pt.size
}
