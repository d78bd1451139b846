package chess

// Game is the result of parsing one PGN game: its tags, the decoded
// (not yet validated) moves, the termination and any trailing comments.
type Game struct {
	Tags             map[string]string
	Moves            []*Move
	Result           Result
	TrailingComments []string
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return &Game{Tags: make(map[string]string)}
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags[name]
}

// PlyCount returns the number of moves.
func (g *Game) PlyCount() int {
	return len(g.Moves)
}
