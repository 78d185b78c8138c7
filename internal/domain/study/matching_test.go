package study

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

func TestMatchingTileCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 6, 7, 20} {
		m := NewMatching(makeVocab(n))
		want := min(n, DefaultPairLimit)

		state := m.State()
		assert.Len(t, state.Tiles, 2*want, "vocab %d", n)
		assert.Equal(t, want, state.TotalPairs)
		assert.Equal(t, n == 0, m.Empty())
	}
}

func TestMatchingUsesFirstRecords(t *testing.T) {
	vocab := makeVocab(8)
	m := NewMatching(vocab, WithRandomizer(fixedRandomizer{}))

	used := map[uuid.UUID]bool{}
	for _, tile := range m.State().Tiles {
		used[tile.VocabularyID] = true
	}
	for i, v := range vocab {
		assert.Equal(t, i < DefaultPairLimit, used[v.ID], "record %d", i)
	}
}

func TestMatchingTotality(t *testing.T) {
	rec := &recorder{}
	vocab := makeVocab(6)
	m := NewMatching(vocab, append(rec.options(), WithRandomizer(NewSeededRandomizer(3)))...)

	for i, v := range vocab {
		require.Equal(t, SelectHeld, m.Select(TileID(v.ID, SideDefinition)))
		require.Equal(t, SelectMatched, m.Select(TileID(v.ID, SideTerm)))
		assert.Equal(t, i+1, m.State().MatchedPairs)
	}

	state := m.State()
	assert.True(t, state.Completed)
	assert.Equal(t, len(vocab), state.MatchedPairs)
	for _, tile := range state.Tiles {
		assert.True(t, tile.Matched, tile.ID)
	}

	kinds := rec.kinds()
	assert.Equal(t, NotifyCompleted, kinds[len(kinds)-1])
	assert.Equal(t, 0, rec.completed(), "completion callback waits for Continue")

	assert.True(t, m.Continue())
	assert.Equal(t, 1, rec.completed())
}

func TestMatchingScenario(t *testing.T) {
	gato := domain.Vocabulary{ID: uuid.New(), Term: "gato", Definition: "cat"}
	perro := domain.Vocabulary{ID: uuid.New(), Term: "perro", Definition: "dog"}
	pez := domain.Vocabulary{ID: uuid.New(), Term: "pez", Definition: "fish"}
	vocab := []domain.Vocabulary{gato, perro, pez}

	t.Run("six tiles", func(t *testing.T) {
		m := NewMatching(vocab)
		texts := []string{}
		for _, tile := range m.State().Tiles {
			texts = append(texts, tile.Text)
		}
		assert.ElementsMatch(t, []string{"gato", "perro", "pez", "cat", "dog", "fish"}, texts)
	})

	t.Run("term then definition matches", func(t *testing.T) {
		rec := &recorder{}
		m := NewMatching(vocab, rec.options()...)

		assert.Equal(t, SelectHeld, m.Select(TileID(gato.ID, SideTerm)))
		assert.Equal(t, SelectMatched, m.Select(TileID(gato.ID, SideDefinition)))
		assert.Equal(t, 1, m.State().MatchedPairs)
		assert.Equal(t, []NotificationKind{NotifyMatchFound}, rec.kinds())
	})

	t.Run("definition then term matches", func(t *testing.T) {
		m := NewMatching(vocab)

		m.Select(TileID(gato.ID, SideDefinition))
		assert.Equal(t, SelectMatched, m.Select(TileID(gato.ID, SideTerm)))
		assert.Equal(t, 1, m.State().MatchedPairs)
	})

	t.Run("wrong pair stays unmatched", func(t *testing.T) {
		rec := &recorder{}
		m := NewMatching(vocab, rec.options()...)

		m.Select(TileID(gato.ID, SideTerm))
		assert.Equal(t, SelectMismatched, m.Select(TileID(perro.ID, SideDefinition)))

		state := m.State()
		assert.Equal(t, 0, state.MatchedPairs)
		assert.Empty(t, state.Selected)
		for _, tile := range state.Tiles {
			assert.False(t, tile.Matched)
		}
		assert.Equal(t, []NotificationKind{NotifyIncorrect}, rec.kinds())
	})
}

func TestMatchingSameSideIsMismatch(t *testing.T) {
	vocab := makeVocab(2)
	m := NewMatching(vocab)

	m.Select(TileID(vocab[0].ID, SideTerm))
	assert.Equal(t, SelectMismatched, m.Select(TileID(vocab[1].ID, SideTerm)))
}

func TestMatchingReselectSameTile(t *testing.T) {
	rec := &recorder{}
	vocab := makeVocab(2)
	m := NewMatching(vocab, rec.options()...)

	id := TileID(vocab[0].ID, SideTerm)
	assert.Equal(t, SelectHeld, m.Select(id))
	assert.Equal(t, SelectHeld, m.Select(id))
	assert.Equal(t, id, m.State().Selected)
	assert.Empty(t, rec.kinds())

	assert.Equal(t, SelectMatched, m.Select(TileID(vocab[0].ID, SideDefinition)))
}

func TestMatchingIgnoresMatchedAndUnknownTiles(t *testing.T) {
	vocab := makeVocab(3)
	m := NewMatching(vocab)

	m.Select(TileID(vocab[0].ID, SideTerm))
	m.Select(TileID(vocab[0].ID, SideDefinition))

	assert.Equal(t, SelectIgnored, m.Select(TileID(vocab[0].ID, SideTerm)))
	assert.Equal(t, SelectIgnored, m.Select("nope"))
	assert.Empty(t, m.State().Selected)

	m.Select(TileID(vocab[1].ID, SideTerm))
	assert.Equal(t, SelectIgnored, m.Select(TileID(vocab[0].ID, SideDefinition)), "matched tile does not clear selection")
	assert.Equal(t, TileID(vocab[1].ID, SideTerm), m.State().Selected)
}

func TestMatchingRestart(t *testing.T) {
	vocab := makeVocab(2)
	m := NewMatching(vocab, WithRandomizer(NewSeededRandomizer(11)))

	for _, v := range vocab {
		m.Select(TileID(v.ID, SideTerm))
		m.Select(TileID(v.ID, SideDefinition))
	}
	require.True(t, m.Completed())
	assert.Equal(t, SelectIgnored, m.Select(TileID(vocab[0].ID, SideTerm)))

	m.Restart()

	state := m.State()
	assert.False(t, state.Completed)
	assert.Equal(t, 0, state.MatchedPairs)
	assert.Len(t, state.Tiles, 4)
	for _, tile := range state.Tiles {
		assert.False(t, tile.Matched)
	}
}

func TestMatchingContinueBeforeCompletion(t *testing.T) {
	rec := &recorder{}
	m := NewMatching(makeVocab(2), rec.options()...)

	assert.False(t, m.Continue())
	assert.Zero(t, rec.completed())
}

func TestMatchingEmpty(t *testing.T) {
	m := NewMatching(nil)

	assert.True(t, m.Empty())
	assert.False(t, m.Completed())
	assert.Equal(t, SelectIgnored, m.Select("x"))
	assert.False(t, m.Continue())
}
