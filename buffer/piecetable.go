// Package buffer provides the mutable text document rendered by the live
// view. Offsets are byte offsets into the UTF-8 text.
package buffer

import (
	"strings"
)

// PieceTable is a piece table over an immutable original buffer and an
// append-only buffer holding inserted text.
type PieceTable struct {
	originalBuf []byte
	addBuf      []byte
	pieces      *pieceList
	// byte size of the text sequence.
	size int
	// version is bumped by every successful edit.
	version uint64

	// last inserted piece and the sequence offset right after it, for
	// merging consecutive typing into one piece.
	lastInsertPiece *piece
	lastInsertEnd   int
}

func NewPieceTable(text []byte) *PieceTable {
	pt := &PieceTable{
		pieces: newPieceList(),
	}
	pt.init(text)

	return pt
}

// Initialize the piece table with the text by adding the text to the original buffer,
// and create the first piece point to the buffer.
func (pt *PieceTable) init(text []byte) {
	pt.originalBuf = append([]byte(nil), text...)
	if len(text) == 0 {
		return
	}

	pt.pieces.Append(&piece{
		source: original,
		off:    0,
		length: len(text),
	})
	pt.size = len(text)
}

func (pt *PieceTable) getBuf(source bufSrc) []byte {
	if source == original {
		return pt.originalBuf
	}

	return pt.addBuf
}

// Insert inserts text at the byte offset off. It returns false if off is out
// of range or text is empty.
// There are 2 scenarios need to be handled:
//  1. Insert in the middle of a piece.
//  2. Insert at the boundary of two pieces.
func (pt *PieceTable) Insert(off int, text string) bool {
	if off > pt.size || off < 0 || text == "" {
		return false
	}

	if pt.tryAppendToLastPiece(off, text) {
		return true
	}

	addOff := len(pt.addBuf)
	pt.addBuf = append(pt.addBuf, text...)
	newPiece := &piece{source: added, off: addOff, length: len(text)}

	oldPiece, inOff := pt.pieces.FindPiece(off)
	if inOff == 0 {
		pt.pieces.InsertBefore(oldPiece, newPiece)
	} else {
		right := &piece{
			source: oldPiece.source,
			off:    oldPiece.off + inOff,
			length: oldPiece.length - inOff,
		}
		oldPiece.length = inOff
		pt.pieces.InsertAfter(oldPiece, newPiece)
		pt.pieces.InsertAfter(newPiece, right)
	}

	pt.lastInsertPiece = newPiece
	pt.lastInsertEnd = off + len(text)
	pt.size += len(text)
	pt.version++
	return true
}

// Check if this insert can be merged into the previous one: the insertion
// point is right after it and its text is still the tail of the add buffer.
func (pt *PieceTable) tryAppendToLastPiece(off int, text string) bool {
	p := pt.lastInsertPiece
	if p == nil || off != pt.lastInsertEnd || p.off+p.length != len(pt.addBuf) {
		return false
	}

	pt.addBuf = append(pt.addBuf, text...)
	p.length += len(text)
	pt.lastInsertEnd += len(text)
	pt.size += len(text)
	pt.version++
	return true
}

// Erase removes the bytes in [start, end). The bounds are swapped if needed
// and clamped to the document. It returns false if nothing was removed.
func (pt *PieceTable) Erase(start, end int) bool {
	if start > end {
		start, end = end, start
	}
	start = max(start, 0)
	end = min(end, pt.size)
	if start >= end {
		return false
	}

	pieceStart := 0
	for n := pt.pieces.Head(); n != pt.pieces.tail && pieceStart < end; {
		next := n.next
		pieceEnd := pieceStart + n.length

		if pieceEnd > start {
			cutFrom := max(start, pieceStart) - pieceStart
			cutTo := min(end, pieceEnd) - pieceStart

			switch {
			case cutFrom == 0 && cutTo == n.length:
				pt.pieces.Remove(n)
			case cutFrom == 0:
				n.off += cutTo
				n.length -= cutTo
			case cutTo == n.length:
				n.length = cutFrom
			default:
				// the erased range sits in the middle of the piece.
				right := &piece{
					source: n.source,
					off:    n.off + cutTo,
					length: n.length - cutTo,
				}
				n.length = cutFrom
				pt.pieces.InsertAfter(n, right)
			}
		}

		pieceStart = pieceEnd
		n = next
	}

	pt.lastInsertPiece = nil
	pt.size -= end - start
	pt.version++
	return true
}

// SetText discards the content and replaces it with text.
func (pt *PieceTable) SetText(text []byte) {
	version := pt.version
	*pt = PieceTable{pieces: newPieceList()}
	pt.init(text)
	pt.version = version + 1
}

// Len returns the size of the document in bytes.
func (pt *PieceTable) Len() int {
	return pt.size
}

// Version returns a counter incremented on every change of the content.
func (pt *PieceTable) Version() uint64 {
	return pt.version
}

// Slice returns the text in [from, to), clamped to the document. An empty
// string is returned when from >= to.
func (pt *PieceTable) Slice(from, to int) string {
	from = max(from, 0)
	to = min(to, pt.size)
	if from >= to {
		return ""
	}

	var b strings.Builder
	b.Grow(to - from)

	pieceStart := 0
	for n := pt.pieces.Head(); n != pt.pieces.tail && pieceStart < to; n = n.next {
		pieceEnd := pieceStart + n.length
		if pieceEnd > from {
			lo := max(from, pieceStart) - pieceStart
			hi := min(to, pieceEnd) - pieceStart
			b.Write(pt.getBuf(n.source)[n.off+lo : n.off+hi])
		}
		pieceStart = pieceEnd
	}

	return b.String()
}

// String returns the whole document.
func (pt *PieceTable) String() string {
	return pt.Slice(0, pt.size)
}
