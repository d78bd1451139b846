package hashing

import "github.com/lgbarn/chess-replay-go/internal/chess"

const zobristSeed = 0x9e3779b97f4a7c15

var (
	// pieceKeys is indexed [side][kind-1][square index].
	pieceKeys [2][6][chess.BoardSize * chess.BoardSize]uint64
	blackKey  uint64
)

func init() {
	state := uint64(zobristSeed)
	for side := range pieceKeys {
		for kind := range pieceKeys[side] {
			for sq := range pieceKeys[side][kind] {
				pieceKeys[side][kind][sq] = splitMix64(&state)
			}
		}
	}
	blackKey = splitMix64(&state)
}

// splitMix64 advances state and returns the next pseudo-random value.
func splitMix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Zobrist returns the Zobrist hash of a placement with toMove to play.
// Castling and en passant rights are not included.
func Zobrist(s chess.Snapshot, toMove chess.Side) uint64 {
	var h uint64
	for rank := range s {
		for file, c := range s[rank] {
			if c.Kind == chess.NoPiece {
				continue
			}
			idx := chess.Sq(chess.File(file), chess.Rank(rank)).Index()
			h ^= pieceKeys[c.Side][c.Kind-1][idx]
		}
	}
	if toMove == chess.Black {
		h ^= blackKey
	}
	return h
}
