package quantity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		required  string
		available string
		want      float64
	}{
		{"2", "0.5", 1.5},
		{"1", "5", 0},
		{"abc", "2", 0},
		{"3", "", 3},
		{"", "", 0},
		{"1,5", "0,5", 1},
		{"2", "abc", 2},
		{"1 1/2", "1/2", 1},
		{"½", "", 0.5},
		{"2 large", "1", 1},
		{"0.1", "0.3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.required+"-"+tt.available, func(t *testing.T) {
			got := Reconcile(tt.required, tt.available)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"2", "2", true},
		{" 0.5 ", "0.5", true},
		{"1,25", "1.25", true},
		{"1/2", "0.5", true},
		{"1 1/2", "1.5", true},
		{"1½", "1.5", true},
		{"¾", "0.75", true},
		{"2.", "2", true},
		{".5", "0.5", true},
		{"3 cups", "3", true},
		{"1/0", "1", true},
		{"abc", "0", false},
		{"", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestShortfall(t *testing.T) {
	got, ok := Shortfall("2", "0.5")
	assert.True(t, ok)
	assert.Equal(t, "1.5", got)

	got, ok = Shortfall("1", "5")
	assert.True(t, ok)
	assert.Equal(t, "0", got)

	_, ok = Shortfall("some", "1")
	assert.False(t, ok)

	_, ok = Shortfall("1", "")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	third := decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	assert.Equal(t, "0.33", Format(third))
	assert.Equal(t, "2", Format(decimal.NewFromInt(2)))
	assert.Equal(t, "1.5", Format(decimal.RequireFromString("1.50")))
}
