package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chess-replay-go/internal/config"
	"github.com/lgbarn/chess-replay-go/internal/replay"
	"github.com/lgbarn/chess-replay-go/internal/testutil"
)

const annotatedPGN = `[Event "Test"]
[White "Fischer"]
[Black "Spassky"]
[ECO "C20"]
[Result "1-0"]

1. e4 {best by test} e5 2. Nf3 $1 (2. f4 exf4) Nc6 1-0 {adjourned}
`

func loadSession(t *testing.T, pgn string, cursor int) *replay.Session {
	t.Helper()
	s, err := replay.NewSession(testutil.MustParseGame(t, pgn))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if err := s.Seek(cursor); err != nil {
		t.Fatalf("Seek(%d) error = %v", cursor, err)
	}
	return s
}

// TestTextWriter_WriteGame verifies the text writer reproduces tags and movetext
func TestTextWriter_WriteGame(t *testing.T) {
	var buf bytes.Buffer
	writer := NewTextWriter(&buf, config.NewOutputConfig())
	if err := writer.WriteGame(loadSession(t, annotatedPGN, 0)); err != nil {
		t.Fatalf("WriteGame failed: %v", err)
	}

	want := `[Event "Test"]
[Site "?"]
[Date "?"]
[Round "?"]
[White "Fischer"]
[Black "Spassky"]
[Result "1-0"]
[ECO "C20"]

1. e4 {best by test} 1... e5 2. Nf3 $1 (2. f4 exf4) 2... Nc6 1-0 {adjourned}

`
	testutil.AssertEqual(t, buf.String(), want)
}

func TestWriteText_Options(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*config.OutputConfig)
		want string
	}{
		{
			name: "no tags",
			cfg:  func(c *config.OutputConfig) { c.TagFormat = config.NoTags },
			want: "1. e4 {best by test} 1... e5 2. Nf3 $1 (2. f4 exf4) 2... Nc6 1-0 {adjourned}\n\n",
		},
		{
			name: "bare movetext",
			cfg: func(c *config.OutputConfig) {
				c.TagFormat = config.NoTags
				c.KeepComments = false
				c.KeepNAGs = false
				c.KeepVariations = false
			},
			want: "1. e4 e5 2. Nf3 Nc6 1-0\n\n",
		},
		{
			name: "variations only",
			cfg: func(c *config.OutputConfig) {
				c.TagFormat = config.NoTags
				c.KeepComments = false
				c.KeepNAGs = false
			},
			want: "1. e4 e5 2. Nf3 (2. f4 exf4) 2... Nc6 1-0\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewOutputConfig()
			tt.cfg(cfg)
			var buf bytes.Buffer
			if err := WriteText(&buf, loadSession(t, annotatedPGN, 0), cfg); err != nil {
				t.Fatalf("WriteText() error = %v", err)
			}
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}
}

func TestWriteText_SevenTagRoster(t *testing.T) {
	cfg := config.NewOutputConfig()
	cfg.TagFormat = config.SevenTagRoster
	var buf bytes.Buffer
	if err := WriteText(&buf, loadSession(t, annotatedPGN, 0), cfg); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "ECO") {
		t.Error("seven tag roster output contains ECO")
	}
	if got := strings.Count(out, "]\n"); got != 7 {
		t.Errorf("tag lines = %d, want 7", got)
	}
}

func TestWriteText_EscapesAndComments(t *testing.T) {
	cfg := config.NewOutputConfig()
	var buf bytes.Buffer
	pgn := "[Annotator \"The \\\"Master\\\"\"]\n1. e4 ; king's pawn\ne5 *"
	if err := WriteText(&buf, loadSession(t, pgn, 0), cfg); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `[Annotator "The \"Master\""]`) {
		t.Errorf("missing escaped annotator tag:\n%s", out)
	}
	if !strings.Contains(out, `[Result "*"]`) {
		t.Errorf("missing result tag:\n%s", out)
	}
	if !strings.Contains(out, "1. e4 {king's pawn} 1... e5 *") {
		t.Errorf("rest-of-line comment not rewritten:\n%s", out)
	}
}

func TestWriteText_Wraps(t *testing.T) {
	cfg := config.NewOutputConfig()
	cfg.TagFormat = config.NoTags
	var buf bytes.Buffer
	if err := WriteText(&buf, loadSession(t, operaPGN, 0), cfg); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("lines = %d, want wrapped movetext", len(lines))
	}
	for i, line := range lines {
		if len(line) > DefaultLineLength {
			t.Errorf("line %d has %d characters: %q", i, len(line), line)
		}
	}
	if !strings.HasSuffix(lines[len(lines)-1], "1-0") || !strings.Contains(buf.String(), "17.") {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}

// TestJSONWriter_WriteGame verifies JSON writer outputs correct format
func TestJSONWriter_WriteGame(t *testing.T) {
	var buf bytes.Buffer
	writer := NewJSONWriterSingle(&buf, config.NewOutputConfig())
	if err := writer.WriteGame(loadSession(t, annotatedPGN, 3)); err != nil {
		t.Fatalf("WriteGame failed: %v", err)
	}

	var jg JSONGame
	if err := json.Unmarshal(buf.Bytes(), &jg); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	testutil.AssertEqual(t, jg.Tags["White"], "Fischer")
	testutil.AssertEqual(t, jg.Result, "1-0")
	testutil.AssertEqual(t, jg.PlyCount, 4)
	testutil.AssertEqual(t, jg.Cursor, 3)
	testutil.AssertEqual(t, jg.Status, "in progress")
	testutil.AssertEqual(t, jg.Position, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq -")
	testutil.AssertEqual(t, jg.LastMove, &JSONLastMove{From: "g1", To: "f3"})
	testutil.AssertEqual(t, jg.Comments, []string{"{adjourned}"})

	nf3 := jg.Moves[2]
	testutil.AssertEqual(t, nf3, JSONMove{
		Ply:        3,
		MoveNumber: 2,
		Color:      "white",
		SAN:        "Nf3",
		From:       "g1",
		To:         "f3",
		Piece:      "knight",
		NAGs:       []string{"$1"},
		Variations: []string{"(2. f4 exf4)"},
	})
}

func TestGameToJSON_MoveKinds(t *testing.T) {
	pgn := `1. e4 d5 2. exd5 e5 3. dxe6 Bxe6 4. Nf3 Nc6 5. Bb5 Qd7 6. O-O O-O-O
7. Nc3 g5 8. Nxg5 h5 9. Nxe6 fxe6 10. Bxc6 bxc6 11. d4 h4 12. h3 Qxd4 13. Qxd4 Rxd4
14. b3 Rd2 15. Bxd2 a5 16. a4 c5 17. Rfe1 Kb7 18. Re4 Ka6 19. f4 Kb6 20. f5 Nh6
21. f6 Be7 22. fxe7 Rg8 23. e8=Q *`
	jg := GameToJSON(loadSession(t, pgn, 0), config.NewOutputConfig())

	tests := []struct {
		index int
		check func(JSONMove) bool
		what  string
	}{
		{4, func(m JSONMove) bool { return m.EnPassant && m.Capture && m.From == "d5" && m.To == "e6" }, "en passant"},
		{10, func(m JSONMove) bool { return m.Castling == "kingside" && m.From == "e1" && m.To == "g1" }, "kingside castling"},
		{11, func(m JSONMove) bool { return m.Castling == "queenside" && m.From == "e8" && m.To == "c8" }, "queenside castling"},
		{44, func(m JSONMove) bool { return m.Promotion == "queen" && m.Piece == "pawn" && m.From == "e7" }, "promotion"},
	}
	for _, tt := range tests {
		if !tt.check(jg.Moves[tt.index]) {
			t.Errorf("move %d (%s) = %+v", tt.index, tt.what, jg.Moves[tt.index])
		}
	}
}

func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf, &config.OutputConfig{Format: config.FormatJSON, TagFormat: config.NoTags})

	for _, cursor := range []int{0, 4} {
		if err := writer.WriteGame(loadSession(t, annotatedPGN, cursor)); err != nil {
			t.Fatalf("WriteGame failed: %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Fatal("batch writer wrote before Close")
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	testutil.AssertEqual(t, len(out.Games), 2)
	testutil.AssertEqual(t, out.Games[0].Cursor, 0)
	testutil.AssertEqual(t, out.Games[1].Cursor, 4)
	testutil.AssertEqual(t, len(out.Games[0].Tags), 0)
	testutil.AssertEqual(t, len(out.Games[0].Moves[0].Comments), 0)

	buf.Reset()
	if err := writer.Flush(); err != nil || buf.Len() != 0 {
		t.Errorf("second Flush wrote %q, err %v", buf.String(), err)
	}
}

func TestNewWriter_Text(t *testing.T) {
	if _, ok := NewWriter(&bytes.Buffer{}, config.NewOutputConfig()).(*TextWriter); !ok {
		t.Error("NewWriter(text) is not a *TextWriter")
	}
}

const operaPGN = `1. e4 e5 2. Nf3 d6 3. d4 Bg4 4. dxe5 Bxf3 5. Qxf3 dxe5 6. Bc4 Nf6 7. Qb3 Qe7
8. Nc3 c6 9. Bg5 b5 10. Nxb5 cxb5 11. Bxb5+ Nbd7 12. O-O-O Rd8 13. Rxd7 Rxd7
14. Rd1 Qe6 15. Bxd7+ Nxd7 16. Qb8+ Nxb8 17. Rd8# 1-0`
