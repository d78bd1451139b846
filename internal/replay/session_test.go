package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/errors"
	"github.com/lgbarn/chess-replay-go/internal/testutil"
)

const operaPGN = `[Event "Paris Opera"]
[Site "Paris FRA"]
[Date "1858.??.??"]
[White "Paul Morphy"]
[Black "Duke Karl / Count Isouard"]
[Result "1-0"]

1. e4 e5 2. Nf3 d6 3. d4 Bg4 4. dxe5 Bxf3 5. Qxf3 dxe5 6. Bc4 Nf6 7. Qb3 Qe7
8. Nc3 c6 9. Bg5 b5 10. Nxb5 cxb5 11. Bxb5+ Nbd7 12. O-O-O Rd8 13. Rxd7 Rxd7
14. Rd1 Qe6 15. Bxd7+ Nxd7 16. Qb8+ Nxb8 17. Rd8# 1-0
`

func mustSession(t *testing.T, pgn string) *Session {
	t.Helper()
	s, err := NewSession(testutil.MustParseGame(t, pgn))
	require.NoError(t, err)
	return s
}

func TestSession_PlayTurn(t *testing.T) {
	s := mustSession(t, "1. e4 e5 2. Nf3 Nc6 *")

	assert.False(t, s.HasStarted())
	assert.False(t, s.HasEnded())
	assert.Equal(t, 4, s.Len())

	for i := 0; i < 3; i++ {
		require.NoError(t, s.PlayTurn())
	}
	snap := s.Snapshot()
	assert.Equal(t, chess.Cell{Side: chess.White, Kind: chess.Knight}, snap.At(chess.MustSquare("f3")))
	assert.Equal(t, chess.Cell{}, snap.At(chess.MustSquare("g1")))
	assert.Equal(t, 3, s.Cursor())
	assert.True(t, s.HasStarted())
	assert.False(t, s.HasEnded())
	assert.Equal(t, chess.Black, s.SideToMove())

	require.NoError(t, s.PlayTurn())
	assert.True(t, s.HasEnded())
}

func TestSession_Boundaries(t *testing.T) {
	s := mustSession(t, "1. e4 e5 *")
	start := s.Snapshot()

	require.NoError(t, s.TakeBackTurn())
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, start, s.Snapshot())

	require.NoError(t, s.Seek(2))
	end := s.Snapshot()
	require.NoError(t, s.PlayTurn())
	assert.Equal(t, 2, s.Cursor())
	assert.Equal(t, end, s.Snapshot())
}

func TestSession_EmptyGame(t *testing.T) {
	s := mustSession(t, `[Event "?"] *`)

	assert.True(t, s.HasEnded())
	assert.False(t, s.HasStarted())
	require.NoError(t, s.PlayTurn())
	require.NoError(t, s.TakeBackTurn())
	assert.Equal(t, 0, s.Cursor())
	_, _, ok := s.LastMove()
	assert.False(t, ok)
}

func TestNewSession_InvalidMove(t *testing.T) {
	game := testutil.MustParseGame(t, "1. e4 e5 2. Qxh5 *")

	_, err := NewSession(game)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidMove))

	var ge *errors.GameError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, 3, ge.Ply)
	assert.Equal(t, "validate", ge.Stage)

	var me *errors.MoveError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "invalid move: move 2. Qxh5 is not a valid move", me.Error())
}

func TestNewSession_Errors(t *testing.T) {
	tests := []struct {
		name string
		pgn  string
		want error
	}{
		{"pawn jumps three", "1. e5 *", errors.ErrInvalidMove},
		{"black moves like white", "1. e4 e4 *", errors.ErrInvalidMove},
		{"castle through pieces", "1. O-O *", errors.ErrInvalidMove},
		{"ambiguous knight", "1. Nf3 e5 2. d3 e4 3. Nd2 *", errors.ErrInvalidMove},
		{"missing capture flag", "1. e4 d5 2. Qh5 Bg4 3. Qg4 *", errors.ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(testutil.MustParseGame(t, tt.pgn))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewSession_ResolvesSources(t *testing.T) {
	s := mustSession(t, "1. e4 d6 2. Bb5+ *")

	moves := s.Moves()
	from, ok := moves[2].Source()
	require.True(t, ok)
	assert.Equal(t, "f1", from.String())
	assert.True(t, moves[2].Check)
	for _, m := range moves {
		assert.Nil(t, m.Captured)
	}

	require.NoError(t, s.Seek(3))
	assert.Equal(t, Check, s.Status())
}

func TestSession_LastMove(t *testing.T) {
	s := mustSession(t, "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O Nf6 *")

	tests := []struct {
		cursor   int
		from, to string
	}{
		{1, "e2", "e4"},
		{3, "g1", "f3"},
		{7, "e1", "g1"},
		{8, "g8", "f6"},
	}

	for _, tt := range tests {
		require.NoError(t, s.Seek(tt.cursor))
		from, to, ok := s.LastMove()
		require.True(t, ok, "cursor %d", tt.cursor)
		assert.Equal(t, tt.from, from.String(), "cursor %d", tt.cursor)
		assert.Equal(t, tt.to, to.String(), "cursor %d", tt.cursor)
	}
}

func TestSession_Seek(t *testing.T) {
	s := mustSession(t, operaPGN)
	ref := mustSession(t, operaPGN)

	require.NoError(t, s.Seek(20))
	require.NoError(t, s.Seek(7))
	for i := 0; i < 7; i++ {
		require.NoError(t, ref.PlayTurn())
	}
	assert.Equal(t, ref.Snapshot(), s.Snapshot())
	assert.Equal(t, ref.Position(), s.Position())

	require.NoError(t, s.Seek(1000))
	assert.Equal(t, s.Len(), s.Cursor())
	require.NoError(t, s.Seek(-3))
	assert.Equal(t, 0, s.Cursor())
}

func TestSession_RoundTrip(t *testing.T) {
	s := mustSession(t, operaPGN)
	start := s.Snapshot()

	for !s.HasEnded() {
		require.NoError(t, s.PlayTurn())
	}
	assert.Equal(t, 33, s.Cursor())
	assert.Equal(t, Checkmate, s.Status())
	assert.Len(t, s.Captured(), 12)

	for s.HasStarted() {
		require.NoError(t, s.TakeBackTurn())
	}
	assert.Equal(t, start, s.Snapshot())
	assert.Empty(t, s.Captured())
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", s.Position())
}

func TestSession_Tags(t *testing.T) {
	s := mustSession(t, operaPGN)

	tags := s.Tags()
	assert.Equal(t, "Paul Morphy", tags["White"])
	tags["White"] = "someone else"
	delete(tags, "Site")

	again := s.Tags()
	assert.Equal(t, "Paul Morphy", again["White"])
	assert.Equal(t, "Paris FRA", again["Site"])
	assert.Equal(t, chess.WhiteWins, s.Result())
}

func TestSession_FullTextList(t *testing.T) {
	s := mustSession(t, "1. e4 {best by test} e5 2. Nf3!? $1 (2. f4 exf4) Nc6 * {unfinished}")

	want := []string{
		"1. e4\n{best by test}",
		"1... e5",
		"2. Nf3!? $1\n(2. f4 exf4)",
		"2... Nc6",
	}
	assert.Equal(t, want, s.FullTextList())
	assert.Equal(t, []string{"{unfinished}"}, s.TrailingComments())
	assert.Equal(t, chess.Unfinished, s.Result())
}

func TestSession_Captured(t *testing.T) {
	s := mustSession(t, "1. e4 d5 2. exd5 Qxd5 *")

	require.NoError(t, s.Seek(3))
	assert.Equal(t, []chess.Cell{{Side: chess.Black, Kind: chess.Pawn}}, s.Captured())

	require.NoError(t, s.Seek(4))
	assert.Equal(t, []chess.Cell{
		{Side: chess.Black, Kind: chess.Pawn},
		{Side: chess.White, Kind: chess.Pawn},
	}, s.Captured())
}

func TestSession_Status(t *testing.T) {
	tests := []struct {
		name string
		pgn  string
		want Status
	}{
		{"start", "*", InProgress},
		{"fools mate", "1. f3 e5 2. g4 Qh4# 0-1", Checkmate},
		{"check", "1. e4 d6 2. Bb5+ *", Check},
		{"after scholar's mate", "1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0", Checkmate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSession(t, tt.pgn)
			require.NoError(t, s.Seek(s.Len()))
			assert.Equal(t, tt.want, s.Status())
		})
	}
}

func TestSession_Position(t *testing.T) {
	s := mustSession(t, "1. e4 e5 2. Nf3 *")

	require.NoError(t, s.Seek(1))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3", s.Position())

	require.NoError(t, s.Seek(3))
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq -", s.Position())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "checkmate", Checkmate.String())
	assert.Equal(t, "in progress", InProgress.String())
	assert.Equal(t, "insufficient material", InsufficientMaterial.String())
}
