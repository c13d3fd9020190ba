package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		input   string
		value   Value
		suit    Suit
		wantErr error
	}{
		{input: "As", value: Ace, suit: Spade},
		{input: "Td", value: Ten, suit: Diamond},
		{input: "2c", value: Two, suit: Club},
		{input: "9h", value: Nine, suit: Heart},
		{input: "kS", value: King, suit: Spade},
		{input: "tD", value: Ten, suit: Diamond},
		{input: "A", wantErr: ErrCardLength},
		{input: "Asd", wantErr: ErrCardLength},
		{input: "1s", wantErr: ErrUnknownValue},
		{input: "Ax", wantErr: ErrUnknownSuit},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseCard(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, c.Value())
			assert.Equal(t, tt.suit, c.Suit())
		})
	}
}

func TestCardIndexLayout(t *testing.T) {
	for v := Two; v <= Ace; v++ {
		for s := Spade; s <= Diamond; s++ {
			c := NewCard(v, s)
			assert.Equal(t, int(v)*4+int(s), c.Index())
			assert.Equal(t, v, c.Value())
			assert.Equal(t, s, c.Suit())
		}
	}
}

func TestCardRoundTrip(t *testing.T) {
	for idx := range 52 {
		c := Card(idx)
		parsed, err := ParseCard(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestCardOrdering(t *testing.T) {
	// Higher value always wins; equal values order by suit.
	assert.True(t, MustParseCard("2d") < MustParseCard("3s"))
	assert.True(t, MustParseCard("Ks") < MustParseCard("As"))
	assert.True(t, MustParseCard("As") < MustParseCard("Ac"))
	assert.True(t, MustParseCard("Ac") < MustParseCard("Ah"))
	assert.True(t, MustParseCard("Ah") < MustParseCard("Ad"))
}

func TestSuitValueStrings(t *testing.T) {
	assert.Equal(t, "s", Spade.String())
	assert.Equal(t, "c", Club.String())
	assert.Equal(t, "h", Heart.String())
	assert.Equal(t, "d", Diamond.String())
	assert.Equal(t, "T", Ten.String())
	assert.Equal(t, "A", Ace.String())
	assert.Equal(t, "2", Two.String())
}
