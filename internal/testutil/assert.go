package testutil

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-replay-go/internal/chess"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t testing.TB, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		fail(t, msgAndArgs, "mismatch (-want +got):\n%s", diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		fail(t, msgAndArgs, "unexpected error: %v", err)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !condition {
		fail(t, msgAndArgs, "expected true but got false")
	}
}

// AssertFalse fails if condition is true.
func AssertFalse(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if condition {
		fail(t, msgAndArgs, "expected false but got true")
	}
}

// AssertNil fails if got is not nil, typed nil pointers included.
func AssertNil(t testing.TB, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !isNil(got) {
		fail(t, msgAndArgs, "expected nil but got %v", got)
	}
}

// AssertNotNil fails if got is nil, typed nil pointers included.
func AssertNotNil(t testing.TB, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if isNil(got) {
		fail(t, msgAndArgs, "expected non-nil value but got nil")
	}
}

// AssertBoardState fails if b differs from a state taken earlier with
// CaptureState. The placement is compared first so that a misplaced piece
// is reported as a diagram rather than a struct diff.
func AssertBoardState(t testing.TB, b *chess.Board, want BoardState, msgAndArgs ...interface{}) {
	t.Helper()
	got := CaptureState(b)
	if got.Snapshot != want.Snapshot {
		fail(t, msgAndArgs, "placement differs:\ngot\n%swant\n%s", drawSnapshot(got.Snapshot), drawSnapshot(want.Snapshot))
		return
	}
	if diff := cmp.Diff(want, got); diff != "" {
		fail(t, msgAndArgs, "piece state differs (-want +got):\n%s", diff)
	}
}

// AssertCell fails unless the square holds a piece of the given side and
// effective kind. Kind NoPiece asserts an empty square.
func AssertCell(t testing.TB, b *chess.Board, square string, want chess.Cell) {
	t.Helper()
	snap := b.Snapshot()
	got := snap.At(chess.MustSquare(square))
	if got.Kind == chess.NoPiece && want.Kind == chess.NoPiece {
		return
	}
	if got != want {
		t.Errorf("%s holds %s, want %s", square, cellName(got), cellName(want))
	}
}

func cellName(c chess.Cell) string {
	if c.Kind == chess.NoPiece {
		return "nothing"
	}
	return c.Side.String() + " " + c.Kind.String()
}

// drawSnapshot renders a placement rank 8 first, uppercase for white.
func drawSnapshot(s chess.Snapshot) string {
	var out []byte
	for r := chess.BoardSize - 1; r >= 0; r-- {
		for f := 0; f < chess.BoardSize; f++ {
			c := s[r][f]
			ch := byte('.')
			if c.Kind != chess.NoPiece {
				ch = c.Kind.Letter()
				if c.Side == chess.Black {
					ch += 'a' - 'A'
				}
			}
			out = append(out, ch)
		}
		out = append(out, '\n')
	}
	return string(out)
}

func fail(t testing.TB, msgAndArgs []interface{}, format string, args ...interface{}) {
	t.Helper()
	text := fmt.Sprintf(format, args...)
	if msg := formatMessage(msgAndArgs...); msg != "" {
		text = msg + ": " + text
	}
	t.Error(text)
}

// isNil checks if a value is nil, handling both untyped and typed nils.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// formatMessage formats optional message arguments into a string.
func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(s, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs[0])
}
