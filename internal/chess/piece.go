package chess

// PieceState is the kind-specific history carried by a piece.
// It is implemented by *PawnState and *MoverState only.
type PieceState interface {
	pieceState()
}

// PawnState tracks a pawn's first advance and promotion.
type PawnState struct {
	FirstMovedPly int       // 0 while the pawn has not moved
	Promoted      PieceKind // NoPiece unless promoted
}

// MoverState tracks castling-relevant history for rooks and kings.
type MoverState struct {
	HasMoved      bool
	FirstMovedPly int
}

func (*PawnState) pieceState()  {}
func (*MoverState) pieceState() {}

// Piece is one of the 32 pieces of a game. Pieces are never destroyed;
// a capture only relocates them to the board's captured collection.
type Piece struct {
	ID            int
	Side          Side
	Kind          PieceKind
	Captured      bool
	CaptureSquare Square
	State         PieceState // nil for knights, bishops and queens
}

// NewPiece creates a piece with the state appropriate to its kind.
func NewPiece(id int, side Side, kind PieceKind) *Piece {
	p := &Piece{ID: id, Side: side, Kind: kind}
	switch kind {
	case Pawn:
		p.State = &PawnState{}
	case Rook, King:
		p.State = &MoverState{}
	}
	return p
}

// Pawn returns the pawn state, or nil for other kinds.
func (p *Piece) Pawn() *PawnState {
	s, _ := p.State.(*PawnState)
	return s
}

// Mover returns the rook/king state, or nil for other kinds.
func (p *Piece) Mover() *MoverState {
	s, _ := p.State.(*MoverState)
	return s
}

// EffectiveKind returns the kind used for all rules: the promoted kind
// for a promoted pawn, otherwise Kind.
func (p *Piece) EffectiveKind() PieceKind {
	if ps := p.Pawn(); ps != nil && ps.Promoted != NoPiece {
		return ps.Promoted
	}
	return p.Kind
}

// HasMoved reports whether a rook or king has moved. Other kinds report false.
func (p *Piece) HasMoved() bool {
	if ms := p.Mover(); ms != nil {
		return ms.HasMoved
	}
	return false
}

// Letter returns the FEN letter for the piece's effective kind.
func (p *Piece) Letter() byte {
	c := p.EffectiveKind().Letter()
	if p.Side == Black {
		c += 'a' - 'A'
	}
	return c
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	c := *p
	switch s := p.State.(type) {
	case *PawnState:
		ps := *s
		c.State = &ps
	case *MoverState:
		ms := *s
		c.State = &ms
	}
	return &c
}
