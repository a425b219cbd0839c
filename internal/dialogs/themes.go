package dialogs

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ispapp/sandpad/pkg/code"
)

// SwatchColors returns the colors shown for a theme: background, text,
// accent, keyword, tag and literal.
func SwatchColors(t code.Theme) []color.Color {
	css := []string{
		t.Palette.DefaultBackground,
		t.Palette.ActiveText,
		t.Palette.Accent,
		t.Syntax.Keyword.Style().Color,
		t.Syntax.Tag.Style().Color,
		t.Syntax.StringOrStatic().Style().Color,
	}
	out := make([]color.Color, 0, len(css))
	for _, c := range css {
		parsed, err := code.ParseColor(c)
		if err != nil {
			out = append(out, color.Transparent)
			continue
		}
		out = append(out, parsed)
	}
	return out
}

// NewThemeSwatch draws a row of color squares for a theme.
func NewThemeSwatch(t code.Theme) *fyne.Container {
	row := container.NewHBox()
	for _, c := range SwatchColors(t) {
		r := canvas.NewRectangle(c)
		r.SetMinSize(fyne.NewSize(18, 18))
		r.StrokeColor = color.Gray{Y: 0x80}
		r.StrokeWidth = 1
		row.Add(r)
	}
	return row
}

// ShowThemeDialog lists the predefined themes with swatches. onSelect
// receives the chosen name.
func ShowThemeDialog(parent fyne.Window, current code.ThemeName, onSelect func(code.ThemeName)) {
	names := code.ThemeNames()
	selected := current

	list := widget.NewList(
		func() int { return len(names) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, widget.NewLabel("monokai-pro"), container.NewHBox())
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			row := item.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(string(names[id]))
			swatch := row.Objects[1].(*fyne.Container)
			swatch.Objects = NewThemeSwatch(code.MustLookup(names[id])).Objects
			swatch.Refresh()
		},
	)
	for i, n := range names {
		if n == current {
			list.Select(i)
		}
	}
	list.OnSelected = func(id widget.ListItemID) {
		selected = names[id]
	}

	d := dialog.NewCustomConfirm("Editor Theme", "Apply", "Cancel", list, func(confirmed bool) {
		if confirmed && onSelect != nil {
			onSelect(selected)
		}
	}, parent)
	d.Resize(fyne.NewSize(420, 380))
	d.Show()
}
