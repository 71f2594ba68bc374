package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandForScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  Band
	}{
		{100, BandA},
		{80, BandA},
		{79, BandB},
		{60, BandB},
		{59, BandC},
		{40, BandC},
		{39, BandD},
		{0, BandD},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BandForScore(tt.score), "score %d", tt.score)
	}
}

func TestTierForBand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TierPriority, TierForBand(BandA))
	assert.Equal(t, TierGood, TierForBand(BandB))
	assert.Equal(t, TierPass, TierForBand(BandC))
	assert.Equal(t, TierSkip, TierForBand(BandD))
}

func TestContactable(t *testing.T) {
	t.Parallel()

	assert.False(t, Business{}.Contactable())
	assert.True(t, Business{Email: "a@b.com"}.Contactable())
	assert.True(t, Business{ContactURL: "https://x.com/contact"}.Contactable())
	assert.True(t, Business{Phone: "512-555-0100"}.Contactable())
}
