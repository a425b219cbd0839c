package code

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRGBA(t *testing.T) {
	assert.Equal(t, "rgba(255, 255, 255, 0.5)", ToRGBA("#fff", 0.5))
	assert.Equal(t, "rgba(0, 0, 0, 0.2)", ToRGBA("#000000", 0.2))
	assert.Equal(t, "rgba(228, 231, 235, 0.5)", ToRGBA("#e4e7eb", 0.5))
	assert.Equal(t, "rgba(255, 255, 255, 1)", ToRGBA("#FFF", 1))
}

func TestToRGBAPassThrough(t *testing.T) {
	assert.Equal(t, "notahex", ToRGBA("notahex", 0.5))
	assert.Equal(t, "#ffffffff", ToRGBA("#ffffffff", 1))
	assert.Equal(t, "rgb(1, 22, 39)", ToRGBA("rgb(1, 22, 39)", 0.5))
	assert.Equal(t, "", ToRGBA("", 0.5))
	assert.Equal(t, "fff", ToRGBA("fff", 0.5))
}

func TestToRGBAMalformedDigits(t *testing.T) {
	assert.Equal(t, "rgba(NaN, 255, 255, 0.5)", ToRGBA("#zzffff", 0.5))
	assert.Equal(t, "rgba(NaN, NaN, NaN, 0.3)", ToRGBA("#xyz", 0.3))
}

func TestToRGBAAlphaUnclamped(t *testing.T) {
	assert.Equal(t, "rgba(0, 0, 0, 1.5)", ToRGBA("#000", 1.5))
	assert.Equal(t, "rgba(0, 0, 0, -1)", ToRGBA("#000", -1))
	assert.Equal(t, "rgba(0, 0, 0, 0.123456)", ToRGBA("#000", 0.123456))
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#fff":                     {R: 255, G: 255, B: 255, A: 255},
		"#0971F1":                  {R: 9, G: 113, B: 241, A: 255},
		"rgb(1, 22, 39)":           {R: 1, G: 22, B: 39, A: 255},
		" rgba(255, 216, 102, 0) ": {R: 255, G: 216, B: 102, A: 0},
		"rgba(10,20,30,1)":         {R: 10, G: 20, B: 30, A: 255},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "inherit", "#12", "rgb(1, 2)", "rgb(300, 0, 0)", "rgba(0, 0, 0, 2)"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}
