package code

// Font size bounds applied by zoom and settings.
const (
	MinFontSize     float32 = 8
	MaxFontSize     float32 = 48
	DefaultFontSize float32 = 14
)

// Options holds the per-editor display preferences.
type Options struct {
	FontSize        float32 `json:"fontSize"`
	TabSize         int     `json:"tabSize"`
	WordWrap        bool    `json:"wordWrap"`
	ShowLineNumbers bool    `json:"showLineNumbers"`
}

// DefaultOptions returns the options a new editor starts with. A zero font
// size defers to the theme typography.
func DefaultOptions() Options {
	return Options{
		TabSize:         2,
		ShowLineNumbers: true,
	}
}

// ClampFontSize keeps size within the supported range. Zero is kept.
func ClampFontSize(size float32) float32 {
	switch {
	case size == 0:
		return 0
	case size < MinFontSize:
		return MinFontSize
	case size > MaxFontSize:
		return MaxFontSize
	}
	return size
}
