package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/poker"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"royal flush", "AsKsQsJsTs", "Royal Flush"},
		{"wheel", "As5h4d3c2s", "Straight"},
		{"trips", "2s2h2d7c9s", "Three of a Kind"},
		{"seven cards", "AhAd2c2dKsKc9h", "Two Pair"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, evaluate(&out, tt.input))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestEvaluateMultiplier(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, evaluate(&out, "AsKsQsJsTs"))
	assert.Contains(t, out.String(), "250x")
	assert.Contains(t, out.String(), "1 of 10")
}

func TestEvaluateErrors(t *testing.T) {
	var out bytes.Buffer

	err := evaluate(&out, "AsKs")
	assert.True(t, errors.Is(err, poker.ErrCardCount), "got %v", err)

	err = evaluate(&out, "AsAsKsQsJs")
	assert.ErrorContains(t, err, "duplicate card")

	err = evaluate(&out, "XxKsQsJsTs")
	assert.ErrorContains(t, err, "parsing cards")

	assert.Empty(t, out.String())
}
