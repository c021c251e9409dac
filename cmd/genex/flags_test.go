package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/genex/core/errors"
	"go.eggybyte.com/genex/testingx"
)

func TestParseBoolToken(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"t", true},
		{"TRUE", true},
		{" T ", true},
		{"false", false},
		{"f", false},
		{"False", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseBoolToken("--mapper", tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"yes", "1", "", "tru"} {
		_, err := parseBoolToken("--mapper", bad)
		testingx.AssertError(t, err, errors.CodeInvalidArgument)
	}
}

func TestBoolFlagFallback(t *testing.T) {
	got, err := boolFlag("--repository", "", true)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = boolFlag("--repository", "f", true)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestParseLombokMode(t *testing.T) {
	mode, err := parseLombokMode("--lombok", "AUTO")
	require.NoError(t, err)
	assert.True(t, mode.auto)

	mode, err = parseLombokMode("--lombok", "t")
	require.NoError(t, err)
	assert.Equal(t, lombokMode{enabled: true}, mode)

	_, err = parseLombokMode("--lombok", "sometimes")
	testingx.AssertError(t, err, errors.CodeInvalidArgument)
}
