package code

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ToRGBA converts a #rgb or #rrggbb color to a CSS rgba() string with the
// given alpha. Any other input is returned unchanged. Malformed hex digits
// produce NaN for that channel instead of an error.
func ToRGBA(hex string, alpha float64) string {
	digits := []rune(hex)
	if !strings.HasPrefix(hex, "#") || (len(digits) != 4 && len(digits) != 7) {
		return hex
	}

	var pairs [3]string
	if len(digits) == 4 {
		for i := range pairs {
			pairs[i] = string([]rune{digits[i+1], digits[i+1]})
		}
	} else {
		for i := range pairs {
			pairs[i] = string(digits[1+2*i : 3+2*i])
		}
	}

	return fmt.Sprintf("rgba(%s, %s, %s, %s)",
		hexChannel(pairs[0]),
		hexChannel(pairs[1]),
		hexChannel(pairs[2]),
		formatAlpha(alpha),
	)
}

func hexChannel(pair string) string {
	v, err := strconv.ParseUint(pair, 16, 8)
	if err != nil {
		return "NaN"
	}
	return strconv.FormatUint(v, 10)
}

func formatAlpha(alpha float64) string {
	switch {
	case math.IsNaN(alpha):
		return "NaN"
	case math.IsInf(alpha, 1):
		return "Infinity"
	case math.IsInf(alpha, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(alpha, 'f', -1, 64)
}

// ParseColor parses the CSS color forms used by themes: #rgb, #rrggbb,
// rgb(r, g, b) and rgba(r, g, b, a).
func ParseColor(css string) (color.NRGBA, error) {
	s := strings.TrimSpace(css)

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", css, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}

	lower := strings.ToLower(s)
	var body string
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		body = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: unsupported format", css)
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected 3 or 4 components", css)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: bad channel %q", css, strings.TrimSpace(parts[i]))
		}
		channels[i] = uint8(v)
	}

	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: bad alpha %q", css, strings.TrimSpace(parts[3]))
		}
		alpha = uint8(math.Round(a * 255))
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// hexString formats c as #rrggbb, dropping alpha.
func hexString(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
