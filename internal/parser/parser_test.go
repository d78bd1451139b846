package parser

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/errors"
)

const operaPGN = `[Event "A Night at the Opera"]
[Site "Paris FRA"]
[Date "1858.??.??"]
[Round "?"]
[White "Paul Morphy"]
[Black "Duke Karl / Count Isouard"]
[Result "1-0"]

1. e4 e5 2. Nf3 d6 3. d4 Bg4 $2 4. dxe5 Bxf3 5. Qxf3 dxe5 6. Bc4 Nf6 7. Qb3 Qe7
8. Nc3 c6 9. Bg5 b5 10. Nxb5! cxb5 11. Bxb5+ Nbd7 12. O-O-O Rd8 13. Rxd7 Rxd7
14. Rd1 Qe6 15. Bxd7+ Nxd7 16. Qb8+!! Nxb8 17. Rd8# 1-0
`

func mustParse(t *testing.T, pgn string) *chess.Game {
	t.Helper()
	game, err := ParseString(pgn)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	return game
}

func TestParseSimpleGame(t *testing.T) {
	game := mustParse(t, operaPGN)

	tests := []struct {
		tag  string
		want string
	}{
		{"Event", "A Night at the Opera"},
		{"White", "Paul Morphy"},
		{"Black", "Duke Karl / Count Isouard"},
		{"Result", "1-0"},
		{"ECO", ""},
	}
	for _, tt := range tests {
		if got := game.GetTag(tt.tag); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.tag, got, tt.want)
		}
	}

	if count := game.PlyCount(); count != 33 {
		t.Errorf("PlyCount = %d, want 33", count)
	}
	assertEqual(t, game.Result, chess.WhiteWins)
	assertEqual(t, len(game.TrailingComments), 0)

	for i, m := range game.Moves {
		wantSide := chess.White
		if i%2 == 1 {
			wantSide = chess.Black
		}
		if m.Ply != i+1 || m.Side != wantSide {
			t.Errorf("move %d: ply %d side %s, want ply %d side %s", i, m.Ply, m.Side, i+1, wantSide)
		}
	}

	bg4 := game.Moves[5]
	assertEqual(t, bg4.Text, "Bg4")
	assertEqual(t, bg4.NAGs, []string{"$2"})

	queenSac := game.Moves[30]
	assertEqual(t, queenSac.Text, "Qb8+")
	assertEqual(t, queenSac.Annotation, "!!")
	assertEqual(t, queenSac.String(), "16. Qb8+!!")

	last := game.Moves[32]
	assertTrue(t, last.Checkmate)
}

func TestParse_CommentsAndVariations(t *testing.T) {
	game := mustParse(t, `1. e4 {King's pawn} (1. d4 d5) 1... c5 ; Sicilian
2. Nf3 * {trailing one} {trailing two}`)

	assertEqual(t, game.PlyCount(), 3)
	e4 := game.Moves[0]
	assertEqual(t, e4.Comments, []string{"{King's pawn}"})
	assertEqual(t, e4.Variations, []string{"(1. d4 d5)"})
	assertEqual(t, e4.FullText(), "1. e4\n{King's pawn}\n(1. d4 d5)")

	c5 := game.Moves[1]
	assertEqual(t, c5.Comments, []string{"; Sicilian"})
	assertEqual(t, c5.String(), "1... c5")

	assertEqual(t, game.Result, chess.Unfinished)
	assertEqual(t, game.TrailingComments, []string{"{trailing one}", "{trailing two}"})
}

func TestParse_Tags(t *testing.T) {
	tests := []struct {
		name string
		pgn  string
		tag  string
		want string
	}{
		{"escaped quote", `[Annotator "The \"Master\""] *`, "Annotator", `The "Master"`},
		{"escaped backslash", `[Site "C:\\games"] *`, "Site", `C:\games`},
		{"last duplicate wins", `[Event "first"] [Event "second"] *`, "Event", "second"},
		{"empty value", `[Round ""] *`, "Round", ""},
		{"latin-1 value", "[White \"Ren\xe9\"] *", "White", "René"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := mustParse(t, tt.pgn)
			assertEqual(t, game.GetTag(tt.tag), tt.want)
		})
	}
}

func TestParse_Results(t *testing.T) {
	tests := []struct {
		pgn  string
		want chess.Result
	}{
		{"1. e4 1-0", chess.WhiteWins},
		{"1. e4 0-1", chess.BlackWins},
		{"1. e4 1/2-1/2", chess.Draw},
		{"1. e4 *", chess.Unfinished},
		{"*", chess.Unfinished},
	}
	for _, tt := range tests {
		t.Run(tt.pgn, func(t *testing.T) {
			assertEqual(t, mustParse(t, tt.pgn).Result, tt.want)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pgn     string
		wantErr error
		wantMsg string
	}{
		{name: "lexical", pgn: "1. e4 & *", wantErr: errors.ErrLexical, wantMsg: "invalid token after e4"},
		{name: "wrong move number", pgn: "1. e4 e5 3. Nf3 *", wantErr: errors.ErrGrammar, wantMsg: "wrong move number at move number indication 3., it should be 2"},
		{name: "number repeated for white", pgn: "1. e4 e5 1. Nf3 *", wantErr: errors.ErrGrammar, wantMsg: "it should be 2"},
		{name: "comment before first move", pgn: "{intro} 1. e4 *", wantErr: errors.ErrGrammar, wantMsg: "comment before first move"},
		{name: "NAG before first move", pgn: "$1 1. e4 *", wantErr: errors.ErrGrammar, wantMsg: "NAG token before first move"},
		{name: "variation before first move", pgn: "(1. d4) 1. e4 *", wantErr: errors.ErrGrammar, wantMsg: "recursive variation before first move"},
		{name: "missing termination", pgn: "1. e4 e5", wantErr: errors.ErrGrammar, wantMsg: "failed to find game termination token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.pgn))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.pgn, err, tt.wantErr)
			}
			assertContains(t, err.Error(), tt.wantMsg)
		})
	}
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseString(operaPGN); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTokenize(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(strings.NewReader(operaPGN)); err != nil {
			b.Fatal(err)
		}
	}
}
