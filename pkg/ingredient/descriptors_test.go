package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorderDescriptors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tomatoes, diced", "Diced tomatoes"},
		{"chopped spinach", "Chopped spinach"},
		{"tomatoes diced", "Diced tomatoes"},
		{"finely chopped onion", "Finely chopped onion"},
		{"onion, peeled and finely chopped", "Peeled and finely chopped onion"},
		{"tomatoes finely diced", "Finely diced tomatoes"},
		{"spinach", "spinach"},
		{"very ripe bananas", "very ripe bananas"},
		{"chicken breast, boneless", "chicken breast, boneless"},
		{"salt and pepper", "salt and pepper"},
		{"peeled", "peeled"},
		{"", ""},
		{"  butter, melted ", "Melted butter"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ReorderDescriptors(tt.in))
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	tests := map[string]string{
		"cups":   "cup",
		"Cups":   "cup",
		"lbs":    "pound",
		"lb.":    "pound",
		"tbsp":   "tablespoon",
		"g":      "gram",
		"cup":    "cup",
		"bunch":  "bunch",
		"":       "",
		" Jars ": "jar",
		"wheels": "wheels",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeUnit(in), in)
	}
}

func TestCompatibleUnits(t *testing.T) {
	assert.True(t, CompatibleUnits("cups", "cup"))
	assert.True(t, CompatibleUnits("", "kg"))
	assert.True(t, CompatibleUnits("lb", ""))
	assert.True(t, CompatibleUnits("lbs", "pounds"))
	assert.False(t, CompatibleUnits("cups", "g"))
}
