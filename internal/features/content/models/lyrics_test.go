package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testLines = []LyricLine{
	{Time: 0, Text: "Happy birthday to you"},
	{Time: 2.5, Text: "Happy birthday to you"},
	{Time: 5, Text: "Happy birthday dear you"},
	{Time: 8.2, Text: "Happy birthday to you"},
}

func TestCurrentLine(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want int
	}{
		{"before first line", -0.5, -1},
		{"exactly on first line", 0, 0},
		{"inside first window", 1.3, 0},
		{"exactly on boundary", 2.5, 1},
		{"inside middle window", 6, 2},
		{"on last line", 8.2, 3},
		{"past last line", 30, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentLine(testLines, tt.t))
		})
	}
}

func TestCurrentLineEmpty(t *testing.T) {
	assert.Equal(t, -1, CurrentLine(nil, 10))
}

func TestLyricsEnded(t *testing.T) {
	assert.False(t, LyricsEnded(testLines, 8.2))
	assert.False(t, LyricsEnded(testLines, 11.0))
	assert.True(t, LyricsEnded(testLines, 11.3))
	assert.False(t, LyricsEnded(nil, 100))
}
