package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/config"
	"github.com/lgbarn/chess-replay-go/internal/replay"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags     map[string]string `json:"tags,omitempty"`
	Moves    []JSONMove        `json:"moves"`
	Result   string            `json:"result"`
	PlyCount int               `json:"plyCount"`
	Cursor   int               `json:"cursor"`
	Position string            `json:"position"`
	Status   string            `json:"status"`
	LastMove *JSONLastMove     `json:"lastMove,omitempty"`
	Comments []string          `json:"comments,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	Ply        int      `json:"ply"`
	MoveNumber int      `json:"moveNumber"`
	Color      string   `json:"color"` // "white" or "black"
	SAN        string   `json:"san"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Piece      string   `json:"piece"`
	Promotion  string   `json:"promotion,omitempty"`
	Castling   string   `json:"castling,omitempty"` // "kingside" or "queenside"
	EnPassant  bool     `json:"enPassant,omitempty"`
	Capture    bool     `json:"capture,omitempty"`
	Check      bool     `json:"check,omitempty"`
	Checkmate  bool     `json:"checkmate,omitempty"`
	Annotation string   `json:"annotation,omitempty"`
	NAGs       []string `json:"nags,omitempty"`
	Comments   []string `json:"comments,omitempty"`
	Variations []string `json:"variations,omitempty"`
}

// JSONLastMove is the move that produced the position at the cursor.
type JSONLastMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// WriteJSON writes a single game as indented JSON.
func WriteJSON(w io.Writer, s *replay.Session, cfg *config.OutputConfig) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(s, cfg))
}

// GameToJSON converts a session to JSON form, describing the position at
// its cursor.
func GameToJSON(s *replay.Session, cfg *config.OutputConfig) *JSONGame {
	jg := &JSONGame{
		Tags:     reportTags(s, cfg.TagFormat),
		Moves:    make([]JSONMove, 0, s.Len()),
		Result:   s.Result().String(),
		PlyCount: s.Len(),
		Cursor:   s.Cursor(),
		Position: s.Position(),
		Status:   s.Status().String(),
	}
	for _, m := range s.Moves() {
		jg.Moves = append(jg.Moves, convertMove(m, cfg))
	}
	if from, to, ok := s.LastMove(); ok {
		jg.LastMove = &JSONLastMove{From: from.String(), To: to.String()}
	}
	if cfg.KeepComments {
		jg.Comments = s.TrailingComments()
	}
	return jg
}

// convertMove converts a validated move.
func convertMove(m *chess.Move, cfg *config.OutputConfig) JSONMove {
	jm := JSONMove{
		Ply:        m.Ply,
		MoveNumber: m.MoveNumber(),
		Color:      strings.ToLower(m.Side.String()),
		SAN:        m.Text,
		To:         m.Dest.String(),
		Piece:      strings.ToLower(m.Piece.String()),
		Capture:    m.Capture,
		Check:      m.Check,
		Checkmate:  m.Checkmate,
		Annotation: m.Annotation,
	}
	if from, ok := m.Source(); ok {
		jm.From = from.String()
	}
	switch m.Kind {
	case chess.Castling:
		jm.Castling = "queenside"
		if m.Kingside {
			jm.Castling = "kingside"
		}
	case chess.EnPassant:
		jm.EnPassant = true
	case chess.Promotion:
		jm.Promotion = strings.ToLower(m.PromoteTo.String())
	}
	if cfg.KeepNAGs {
		jm.NAGs = m.NAGs
	}
	if cfg.KeepComments {
		jm.Comments = m.Comments
	}
	if cfg.KeepVariations {
		jm.Variations = m.Variations
	}
	return jm
}
