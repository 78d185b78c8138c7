package study

import (
	"slices"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// TileSide tells which half of a vocabulary pair a tile shows.
type TileSide string

// Tile sides.
const (
	SideTerm       TileSide = "term"
	SideDefinition TileSide = "definition"
)

// Tile is one selectable card in the matching game.
type Tile struct {
	ID           string
	VocabularyID uuid.UUID
	Side         TileSide
	Text         string
	Matched      bool
}

// TileID builds the identifier of a tile from its vocabulary ID and side.
func TileID(vocabularyID uuid.UUID, side TileSide) string {
	return vocabularyID.String() + ":" + string(side)
}

// SelectResult reports what Matching.Select did.
type SelectResult int

// Select results.
const (
	// SelectIgnored means the tile was unknown, already matched or the game is over.
	SelectIgnored SelectResult = iota
	// SelectHeld means the tile is now the pending selection.
	SelectHeld
	// SelectMatched means the tile completed a pair.
	SelectMatched
	// SelectMismatched means the two tiles did not belong together.
	SelectMismatched
)

// MatchingState is a snapshot of a matching game.
type MatchingState struct {
	Tiles        []Tile
	Selected     string
	MatchedPairs int
	TotalPairs   int
	Completed    bool
}

// Matching pairs terms with their definitions on a shuffled board built from
// at most the pair limit (default 6) of the first records.
//
// Matching is not safe for concurrent use.
type Matching struct {
	pairs []domain.Vocabulary
	opts  options

	tiles        []Tile
	selected     int
	matchedPairs int
}

// NewMatching deals a new board from vocab.
func NewMatching(vocab []domain.Vocabulary, opts ...Option) *Matching {
	o := newOptions(opts)
	n := min(len(vocab), o.pairLimit)

	m := &Matching{
		pairs: slices.Clone(vocab[:n]),
		opts:  o,
	}
	m.deal()
	return m
}

// Empty reports whether the board has no tiles.
func (m *Matching) Empty() bool {
	return len(m.pairs) == 0
}

// Completed reports whether every pair is matched.
func (m *Matching) Completed() bool {
	return !m.Empty() && m.matchedPairs == len(m.pairs)
}

// Select handles a tap on a tile. The first tap holds the tile; the second
// either matches the pair or clears the selection. Tapping the held tile
// again keeps it held.
func (m *Matching) Select(tileID string) SelectResult {
	if m.Completed() {
		return SelectIgnored
	}

	idx := slices.IndexFunc(m.tiles, func(t Tile) bool { return t.ID == tileID })
	if idx < 0 || m.tiles[idx].Matched {
		return SelectIgnored
	}

	if m.selected < 0 || m.selected == idx {
		m.selected = idx
		return SelectHeld
	}

	first, second := &m.tiles[m.selected], &m.tiles[idx]
	m.selected = -1

	if first.VocabularyID != second.VocabularyID || first.Side == second.Side {
		m.opts.emit(NotifyIncorrect, "Not a match. Try again!")
		return SelectMismatched
	}

	first.Matched = true
	second.Matched = true
	m.matchedPairs++
	m.opts.emit(NotifyMatchFound, "Match found!")

	if m.Completed() {
		m.opts.emit(NotifyCompleted, "Great job! All matches found!")
	}
	return SelectMatched
}

// Restart reshuffles the board and clears all progress.
func (m *Matching) Restart() {
	m.deal()
}

// Continue invokes the completion callback. It only has an effect once the
// game is completed.
func (m *Matching) Continue() bool {
	if !m.Completed() {
		return false
	}
	m.opts.complete()
	return true
}

// State returns a snapshot of the board.
func (m *Matching) State() MatchingState {
	state := MatchingState{
		Tiles:        slices.Clone(m.tiles),
		MatchedPairs: m.matchedPairs,
		TotalPairs:   len(m.pairs),
		Completed:    m.Completed(),
	}
	if m.selected >= 0 {
		state.Selected = m.tiles[m.selected].ID
	}
	return state
}

func (m *Matching) deal() {
	tiles := make([]Tile, 0, 2*len(m.pairs))
	for _, v := range m.pairs {
		tiles = append(tiles, Tile{
			ID:           TileID(v.ID, SideTerm),
			VocabularyID: v.ID,
			Side:         SideTerm,
			Text:         v.Term,
		})
	}
	for _, v := range m.pairs {
		tiles = append(tiles, Tile{
			ID:           TileID(v.ID, SideDefinition),
			VocabularyID: v.ID,
			Side:         SideDefinition,
			Text:         v.Definition,
		})
	}
	shuffle(m.opts.rnd, tiles)

	m.tiles = tiles
	m.selected = -1
	m.matchedPairs = 0
}
