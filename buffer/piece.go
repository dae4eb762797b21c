package buffer

type bufSrc uint8

const (
	original bufSrc = iota
	added
)

// piece is a single piece of text in the piece table.
// We use doubly linked list to represent a piece table here.
type piece struct {
	next *piece
	prev *piece

	// off is the byte offset in the source buffer.
	off int
	// length is the byte length of text the piece covers.
	length int
	// source specifies which buffer this piece point to.
	source bufSrc
}

// Use sentinel nodes to be used as head and tail, as pointed out in https://www.catch22.net/tuts/neatpad/piece-chains/.
type pieceList struct {
	head, tail *piece
}

func newPieceList() *pieceList {
	p := &pieceList{
		head: &piece{},
		tail: &piece{},
	}
	p.head.next = p.tail
	p.tail.prev = p.head

	return p
}

func (pl *pieceList) Head() *piece {
	return pl.head.next
}

func (pl *pieceList) InsertBefore(existing *piece, newPiece *piece) {
	newPiece.next = existing
	newPiece.prev = existing.prev
	existing.prev.next = newPiece
	existing.prev = newPiece
}

func (pl *pieceList) InsertAfter(existing *piece, newPiece *piece) {
	newPiece.prev = existing
	newPiece.next = existing.next
	existing.next.prev = newPiece
	existing.next = newPiece
}

func (pl *pieceList) Append(newPiece *piece) {
	pl.InsertBefore(pl.tail, newPiece)
}

// FindPiece finds the piece holding the byte at off in the sequence,
// returning the piece and the offset inside it. When off is at or past the
// end of the sequence the tail sentinel is returned with offset 0.
func (pl *pieceList) FindPiece(off int) (p *piece, inOff int) {
	pieceOff := 0
	for n := pl.head.next; n != pl.tail; n = n.next {
		if pieceOff+n.length > off {
			return n, off - pieceOff
		}
		pieceOff += n.length
	}

	return pl.tail, 0
}

// Remove a piece from the chain.
func (pl *pieceList) Remove(piece *piece) {
	if piece == nil || piece == pl.head || piece == pl.tail {
		return
	}

	piece.prev.next = piece.next
	piece.next.prev = piece.prev
}

// Length returns total pieces of the chain
func (pl *pieceList) Length() int {
	t := 0
	for n := pl.head.next; n != pl.tail; n = n.next {
		t++
	}

	return t
}
