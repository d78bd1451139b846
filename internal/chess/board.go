package chess

// Board holds piece placement. Pieces live in an arena and each cell
// refers to at most one of them.
type Board struct {
	pieces   []*Piece
	cells    [BoardSize * BoardSize]*Piece
	captured []*Piece
}

// NewEmptyBoard creates a board with no pieces.
func NewEmptyBoard() *Board {
	return &Board{}
}

// Add creates a piece in the arena and places it on sq.
func (b *Board) Add(side Side, kind PieceKind, sq Square) *Piece {
	p := NewPiece(len(b.pieces), side, kind)
	b.pieces = append(b.pieces, p)
	b.cells[sq.Index()] = p
	return p
}

// At returns the piece on sq, or nil.
func (b *Board) At(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return b.cells[sq.Index()]
}

// IsEmpty reports whether sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.At(sq) == nil
}

// Relocate moves whatever is on from to to, overwriting to.
func (b *Board) Relocate(from, to Square) {
	b.cells[to.Index()] = b.cells[from.Index()]
	b.cells[from.Index()] = nil
}

// Set places p on sq (p may be nil to clear the cell).
func (b *Board) Set(sq Square, p *Piece) {
	b.cells[sq.Index()] = p
}

// Capture removes the piece on sq into the captured collection.
func (b *Board) Capture(sq Square) *Piece {
	p := b.cells[sq.Index()]
	if p == nil {
		return nil
	}
	b.cells[sq.Index()] = nil
	p.Captured = true
	p.CaptureSquare = sq
	b.captured = append(b.captured, p)
	return p
}

// Restore returns a captured piece to its capture square and the live collection.
func (b *Board) Restore(p *Piece) {
	for i := len(b.captured) - 1; i >= 0; i-- {
		if b.captured[i] == p {
			b.captured = append(b.captured[:i], b.captured[i+1:]...)
			break
		}
	}
	p.Captured = false
	b.cells[p.CaptureSquare.Index()] = p
	p.CaptureSquare = Square{}
}

// Captured returns the captured pieces in capture order.
func (b *Board) Captured() []*Piece {
	return b.captured
}

// Live returns the pieces still on the board, in arena order.
func (b *Board) Live() []*Piece {
	live := make([]*Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		if !p.Captured {
			live = append(live, p)
		}
	}
	return live
}

// SquareOf returns the square holding p.
func (b *Board) SquareOf(p *Piece) (Square, bool) {
	for i, c := range b.cells {
		if c == p {
			return SquareAt(i), true
		}
	}
	return Square{}, false
}

// King returns the square of side's king.
func (b *Board) King(side Side) (Square, bool) {
	for i, c := range b.cells {
		if c != nil && c.Side == side && c.Kind == King {
			return SquareAt(i), true
		}
	}
	return Square{}, false
}

// Find returns every square holding a piece of side whose effective kind is kind.
func (b *Board) Find(side Side, kind PieceKind) []Square {
	var squares []Square
	for i, c := range b.cells {
		if c != nil && c.Side == side && c.EffectiveKind() == kind {
			squares = append(squares, SquareAt(i))
		}
	}
	return squares
}

// Cell is one square of a Snapshot. Kind is NoPiece for an empty square.
type Cell struct {
	Side Side
	Kind PieceKind
}

// Snapshot is a read-only copy of the placement indexed [rank][file].
type Snapshot [BoardSize][BoardSize]Cell

// At returns the cell at sq.
func (s *Snapshot) At(sq Square) Cell {
	return s[sq.Rank][sq.File]
}

// Snapshot returns a copy of the placement using effective kinds.
func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	for i, c := range b.cells {
		if c == nil {
			continue
		}
		sq := SquareAt(i)
		s[sq.Rank][sq.File] = Cell{Side: c.Side, Kind: c.EffectiveKind()}
	}
	return s
}

// Clone returns a deep copy of the board with its own pieces.
func (b *Board) Clone() *Board {
	nb := &Board{pieces: make([]*Piece, len(b.pieces))}
	for i, p := range b.pieces {
		nb.pieces[i] = p.Clone()
	}
	for i, c := range b.cells {
		if c != nil {
			nb.cells[i] = nb.pieces[c.ID]
		}
	}
	for _, p := range b.captured {
		nb.captured = append(nb.captured, nb.pieces[p.ID])
	}
	return nb
}
