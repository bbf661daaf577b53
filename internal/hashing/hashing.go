// Package hashing provides position hashing and duplicate detection for
// stored games.
package hashing

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// zobristSeed fixes the key table so hashes are stable between runs.
const zobristSeed = 0x5eed_c0de

var zobrist struct {
	pieces   [2][chess.NumPieceKinds][chess.BoardSize][chess.BoardSize]uint64
	black    uint64
	castling [16]uint64
}

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := range zobrist.pieces {
		for k := range zobrist.pieces[c] {
			for rank := range zobrist.pieces[c][k] {
				for file := range zobrist.pieces[c][k][rank] {
					zobrist.pieces[c][k][rank][file] = r.Uint64()
				}
			}
		}
	}
	zobrist.black = r.Uint64()
	for i := range zobrist.castling {
		zobrist.castling[i] = r.Uint64()
	}
}

// ZobristHash returns the Zobrist key of a position: pieces, side to move
// and castling rights.
func ZobristHash(pos *chess.Position) uint64 {
	var h uint64
	for _, sq := range chess.AllSquares() {
		p := pos.Board.Get(sq)
		if p.IsEmpty() {
			continue
		}
		h ^= zobrist.pieces[p.Colour][p.Kind][sq.Rank][sq.File]
	}
	if pos.Turn == chess.Black {
		h ^= zobrist.black
	}
	return h ^ zobrist.castling[pos.Castling&chess.AllCastling]
}

// TextHash hashes the position text. It is independent of the Zobrist
// table and serves as the second check when Zobrist keys collide.
func TextHash(pos *chess.Position) uint64 {
	return xxhash.Sum64String(pos.String())
}

// GameSignature identifies a game by its final position.
type GameSignature struct {
	ID       string
	Hash     uint64 // Zobrist key of the final position
	TextHash uint64
	PlyCount int
}

// Signature returns the signature of g under id.
func Signature(id string, g *engine.Game) GameSignature {
	pos := g.Position()
	return GameSignature{
		ID:       id,
		Hash:     ZobristHash(pos),
		TextHash: TextHash(pos),
		PlyCount: g.Ply(),
	}
}

// DuplicateDetector finds games that end in the same position. It is not
// safe for concurrent use.
type DuplicateDetector struct {
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the same number of plies
	useExactMatch  bool
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
	}
}

// CheckAndAdd records sig. If an earlier game matches, it returns that
// game's signature and true; sig is then not recorded.
func (d *DuplicateDetector) CheckAndAdd(sig GameSignature) (GameSignature, bool) {
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing, true
		}
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return GameSignature{}, false
}

func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.TextHash != b.TextHash {
		return false
	}
	return !d.useExactMatch || a.PlyCount == b.PlyCount
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct games recorded.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}

// Reset clears the detector.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
}
