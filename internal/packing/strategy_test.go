package packing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwise/packwise/internal/packing"
)

func sectionTitles(s *packing.Strategy) []string {
	var titles []string
	for _, sec := range s.Sections {
		titles = append(titles, sec.Title)
	}
	return titles
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		luggage string
		title   string
		first   string
		count   int
	}{
		{"carry-on", "Packing Strategy for Carry-on Suitcase", "Rolling Method", 3},
		{"checked", "Packing Strategy for Checked Suitcase", "Weight Distribution", 3},
		{"backpack-small", "Packing Strategy for Small Backpack", "Weight Distribution", 3},
		{"backpack-medium", "Packing Strategy for Medium Backpack", "Weight Distribution", 3},
		{"backpack-large", "Packing Strategy for Large Backpack", "Weight Distribution", 3},
		{"duffel", "Packing Strategy for Duffel Bag", "Organization Strategy", 3},
		{"osprey-fairview", "Packing Strategy for Osprey Fairview/Farpoint Travel Pack", "Main Compartment (Bottom-to-Top Packing)", 4},
		{"Roller tote", "Packing Strategy for Roller tote", "General Packing Principles", 3},
	}

	for _, tt := range tests {
		t.Run(tt.luggage, func(t *testing.T) {
			s := packing.StrategyFor(tt.luggage)
			require.NotNil(t, s)

			assert.Equal(t, tt.luggage, s.LuggageType)
			assert.Equal(t, tt.title, s.Title)
			assert.Len(t, s.Sections, tt.count)
			assert.Equal(t, tt.first, sectionTitles(s)[0])
		})
	}
}

func TestStrategyFor_CarryOnMentionsLiquidLimit(t *testing.T) {
	s := packing.StrategyFor("carry-on")
	require.NotNil(t, s)

	liquids := s.Sections[2]
	assert.Equal(t, "Liquids and Toiletries", liquids.Title)
	assert.Contains(t, liquids.Tips, "3.4 ounces (100ml) or less per container")
}

func TestStrategyFor_Empty(t *testing.T) {
	assert.Nil(t, packing.StrategyFor(""))
	assert.Nil(t, packing.StrategyFor("   "))
}
