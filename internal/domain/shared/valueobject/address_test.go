package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("defaults to Germany", func(t *testing.T) {
		a, err := NewAddress(" Hauptstraße 1 ", "10115", "Berlin", "")
		require.NoError(t, err)
		assert.Equal(t, "DE", a.Country)
		assert.Equal(t, "Hauptstraße 1", a.Street)
		assert.True(t, a.IsDomestic())
		assert.True(t, a.IsEU())
		assert.Equal(t, "Hauptstraße 1, 10115 Berlin", a.String())
	})

	t.Run("rejects malformed German postal code", func(t *testing.T) {
		_, err := NewAddress("Weg 2", "1011", "Berlin", "de")
		assert.Error(t, err)
	})

	t.Run("rejects missing city", func(t *testing.T) {
		_, err := NewAddress("Weg 2", "10115", "", "DE")
		assert.Error(t, err)
	})

	t.Run("rejects non ISO country", func(t *testing.T) {
		_, err := NewAddress("Weg 2", "1010", "Wien", "AUT")
		assert.Error(t, err)
	})

	t.Run("foreign address", func(t *testing.T) {
		a, err := NewAddress("Ring 5", "1010", "Wien", "at")
		require.NoError(t, err)
		assert.False(t, a.IsDomestic())
		assert.True(t, a.IsEU())
		assert.Equal(t, "Ring 5, 1010 Wien, AT", a.String())
	})
}

func TestIsEUCountry(t *testing.T) {
	assert.True(t, IsEUCountry("fr"))
	assert.True(t, IsEUCountry("DE"))
	assert.False(t, IsEUCountry("CH"))
	assert.False(t, IsEUCountry("GB"))
	assert.False(t, IsEUCountry(""))
}
