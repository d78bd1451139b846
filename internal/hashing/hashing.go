// Package hashing provides duplicate detection for chess games.
package hashing

import (
	"github.com/lgbarn/chess-replay-go/internal/chess"
)

// DuplicateDetector remembers the games it has seen and reports repeats.
// It is not safe for concurrent use.
type DuplicateDetector struct {
	// hashTable maps a final-position hash to the games ending there
	hashTable map[uint64][]entry
	// useExactMatch also compares the move sequence
	useExactMatch bool
	maxCapacity   int
	size          int

	duplicateCount int
}

type entry struct {
	sig  GameSignature
	name string
}

// GameSignature identifies a game for duplicate detection.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// Plies is the number of half-moves in the game
	Plies int
	// MoveHash is a hash of the move texts in order
	MoveHash uint64
}

// Sign builds the signature of a game from its final placement and moves.
func Sign(final chess.Snapshot, toMove chess.Side, moves []*chess.Move) GameSignature {
	return GameSignature{
		Hash:     Zobrist(final, toMove),
		Plies:    len(moves),
		MoveHash: hashMoveSequence(moves),
	}
}

// NewDuplicateDetector creates a detector. maxCapacity of 0 means unlimited;
// once full, new games are still checked but no longer remembered.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]entry),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd reports whether sig matches a game seen before, returning the
// name that game was added under. Otherwise the game is remembered as name.
func (d *DuplicateDetector) CheckAndAdd(name string, sig GameSignature) (string, bool) {
	for _, e := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, e.sig) {
			d.duplicateCount++
			return e.name, true
		}
	}
	if d.IsFull() {
		return "", false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], entry{sig: sig, name: name})
	d.size++
	return "", false
}

func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.Plies != b.Plies {
		return false
	}
	return !d.useExactMatch || a.MoveHash == b.MoveHash
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of games remembered.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull reports whether the detector has reached its capacity.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset forgets every game.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]entry)
	d.size = 0
	d.duplicateCount = 0
}

// hashMoveSequence creates a hash from the move texts.
func hashMoveSequence(moves []*chess.Move) uint64 {
	var hash uint64
	multiplier := uint64(31)
	for _, m := range moves {
		for _, c := range m.Text {
			hash = hash*multiplier + uint64(c)
		}
		// separator so "e4"+"e5" differs from "e4e"+"5"
		hash = hash*multiplier + ' '
	}
	return hash
}
