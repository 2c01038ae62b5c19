package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeeArtTwoArtworks(t *testing.T) {
	fee, err := Fee("art", 2)
	assert.NoError(t, err)
	assert.Equal(t, 300, fee, "art with 2 artworks must be 250 + 30 + 20")
}

func TestFeeSingleArtwork(t *testing.T) {
	fee, err := Fee("art", 1)
	assert.NoError(t, err)
	assert.Equal(t, 280, fee)
}

func TestFeeRepeatsLastScheduleValue(t *testing.T) {
	fee, err := Fee("art", 3)
	assert.NoError(t, err)
	assert.Equal(t, 320, fee, "third artwork repeats the last schedule value")
}

func TestFeeUnknownEventType(t *testing.T) {
	_, err := Fee("sculpture", 1)
	assert.Error(t, err)
}

func TestFeeArtworkCountOutOfRange(t *testing.T) {
	_, err := Fee("art", 0)
	assert.Error(t, err)

	_, err = Fee("art", 6)
	assert.Error(t, err)

	_, err = Fee("dance", 4)
	assert.Error(t, err, "dance allows at most 3 pieces")
}

func TestEveryCatalogEntryHasAPrice(t *testing.T) {
	for _, e := range EventCatalog {
		fee, err := Fee(e.Type, e.MinArtworks)
		assert.NoError(t, err, e.Type)
		assert.Greater(t, fee, 0, e.Type)
	}
}
