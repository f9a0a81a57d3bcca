package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityTypeURN(t *testing.T) {
	urn, err := EntityTypeURN("Brand")
	require.NoError(t, err)
	assert.Equal(t, "urn:entity:brand", urn)

	urn, err = EntityTypeURN("urn:entity:podcast")
	require.NoError(t, err)
	assert.Equal(t, "urn:entity:podcast", urn)

	_, err = EntityTypeURN("spaceship")
	assert.Error(t, err)
}

func TestTopMarkets(t *testing.T) {
	geo := []GeoInsight{
		{Country: "CAN", Weight: 0.7},
		{Country: "USA", Weight: 0.85},
		{Country: "GBR", Weight: 0.75},
		{Country: "AUS", Weight: 0.7},
	}

	top := TopMarkets(geo, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"USA", "GBR", "AUS"}, []string{top[0].Country, top[1].Country, top[2].Country})
	assert.Equal(t, "CAN", geo[0].Country, "input must not be reordered")
	assert.Len(t, TopMarkets(geo, 10), 4)
}
