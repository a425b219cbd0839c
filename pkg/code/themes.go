package code

const (
	systemBodyFont = `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif, "Apple Color Emoji", "Segoe UI Emoji", "Segoe UI Symbol"`
	firaMonoFont   = `"Fira Mono", "DejaVu Sans Mono", Menlo, Consolas, "Liberation Mono", Monaco, "Lucida Console", monospace`
)

var defaultTypography = Typography{
	BodyFont:   systemBodyFont,
	MonoFont:   firaMonoFont,
	FontSize:   "14px",
	LineHeight: "1.4",
}

var predefinedThemes = map[ThemeName]Theme{
	ThemeLight: {
		Palette: Palette{
			ActiveText:        "#1f2933",
			DefaultText:       "#757678",
			InactiveText:      "#e4e7eb",
			ActiveBackground:  "#e4e7eb",
			DefaultBackground: "#f8f9fb",
			InputBackground:   "#ffffff",
			Accent:            "#64D2FF",
			ErrorBackground:   "#ffcdca",
			ErrorForeground:   "#811e18",
		},
		Syntax: Syntax{
			Plain:       Color("#151515"),
			Comment:     Styled(SyntaxStyle{Color: "#999", FontStyle: "italic"}),
			Keyword:     Color("#0971F1"),
			Tag:         Color("#0971F1"),
			Punctuation: Color("#151515"),
			Definition:  Color("#151515"),
			Property:    Color("#151515"),
			Static:      Color("#FF453A"),
			String:      Color("#BF5AF2"),
		},
		Typography: defaultTypography,
	},

	ThemeDark: {
		Palette: Palette{
			ActiveText:        "#FFFFFF",
			DefaultText:       "#999999",
			InactiveText:      "#343434",
			ActiveBackground:  "#343434",
			DefaultBackground: "#040404",
			InputBackground:   "#242424",
			Accent:            "#6caedd",
			ErrorBackground:   "#ffcdca",
			ErrorForeground:   "#811e18",
		},
		Syntax: Syntax{
			Plain:       Color("#FFFFFF"),
			Comment:     Styled(SyntaxStyle{Color: "#757575", FontStyle: "italic"}),
			Keyword:     Color("#77B7D7"),
			Tag:         Color("#DFAB5C"),
			Punctuation: Color("#ffffff"),
			Definition:  Color("#86D9CA"),
			Property:    Color("#77B7D7"),
			Static:      Color("#C64640"),
			String:      Color("#977CDC"),
		},
		Typography: defaultTypography,
	},

	ThemeSandpackDark: {
		Palette: Palette{
			ActiveText:        "#90e86f",
			DefaultText:       "#5a5a5a",
			InactiveText:      "#1a1a1a",
			ActiveBackground:  "#272727",
			DefaultBackground: "#151515",
			InputBackground:   "#2e2e2e",
			Accent:            "#90e86f",
			ErrorBackground:   "#dac1fb",
			ErrorForeground:   "#b08df8",
		},
		Syntax: Syntax{
			Plain:       Color("#f0fdaf"),
			Comment:     Styled(SyntaxStyle{Color: "#757575", FontStyle: "italic"}),
			Keyword:     Color("#e5fd78"),
			Tag:         Color("#f0fdaf"),
			Punctuation: Color("#ffffff"),
			Definition:  Color("#eeeeee"),
			Property:    Color("#90e86f"),
			Static:      Color("#ffffff"),
			String:      Color("#dafecf"),
		},
		Typography: Typography{
			BodyFont:   `Inter, ` + systemBodyFont,
			MonoFont:   `"Fira Code", ` + firaMonoFont,
			FontSize:   "14px",
			LineHeight: "1.6",
		},
	},

	ThemeNightOwl: {
		Palette: Palette{
			ActiveText:        "rgb(197, 228, 253)",
			DefaultText:       "rgb(105, 136, 161)",
			InactiveText:      "rgb(78, 82, 97)",
			ActiveBackground:  "rgb(58, 62, 77)",
			DefaultBackground: "rgb(1, 22, 39)",
			InputBackground:   "rgb(11, 41, 66)",
			Accent:            "#7fdbca",
			ErrorBackground:   "#ffcdca",
			ErrorForeground:   "#811e18",
		},
		Syntax: Syntax{
			Plain:       Color("#d6deeb"),
			Comment:     Styled(SyntaxStyle{Color: "#999999", FontStyle: "italic"}),
			Keyword:     Styled(SyntaxStyle{Color: "#c792ea", FontStyle: "italic"}),
			Tag:         Color("#7fdbca"),
			Punctuation: Color("#7fdbca"),
			Definition:  Color("#82aaff"),
			Property:    Styled(SyntaxStyle{Color: "#addb67", FontStyle: "italic"}),
			Static:      Color("#f78c6c"),
			String:      Color("#ecc48d"),
		},
		Typography: defaultTypography,
	},

	ThemeAquaBlue: {
		Palette: Palette{
			ActiveText:        "#1f2933",
			DefaultText:       "#737373",
			InactiveText:      "#e4e7eb",
			ActiveBackground:  "#e4e7eb",
			DefaultBackground: "#f8f9fb",
			InputBackground:   "#ffffff",
			Accent:            "#6caedd",
			ErrorBackground:   "#ffcdca",
			ErrorForeground:   "#811e18",
		},
		Syntax: Syntax{
			Plain:       Color("#1F2933"),
			Comment:     Styled(SyntaxStyle{Color: "#A7B6C2", FontStyle: "italic"}),
			Keyword:     Color("#1A56DB"),
			Tag:         Color("#1A56DB"),
			Punctuation: Color("#394b59"),
			Definition:  Color("#A23DAD"),
			Property:    Color("#14919B"),
			Static:      Color("#1A56DB"),
			String:      Color("#1992D4"),
		},
		Typography: defaultTypography,
	},

	ThemeGithubLight: {
		Palette: Palette{
			ActiveText:        "#24292e",
			DefaultText:       "#959da5",
			InactiveText:      "#e4e7eb",
			ActiveBackground:  "#e4e7eb",
			DefaultBackground: "#ffffff",
			InputBackground:   "#ffffff",
			Accent:            "#c8c8fa",
			ErrorBackground:   "#ffcdca",
			ErrorForeground:   "#811e18",
		},
		Syntax: Syntax{
			Keyword:     Color("#d73a49"),
			Property:    Color("#005cc5"),
			Plain:       Color("#24292e"),
			Static:      Color("#032f62"),
			String:      Color("#032f62"),
			Definition:  Color("#6f42c1"),
			Punctuation: Color("#24292e"),
			Tag:         Color("#22863a"),
			Comment:     Styled(SyntaxStyle{Color: "#6a737d", FontStyle: "normal"}),
		},
		Typography: defaultTypography,
	},

	ThemeMonokaiPro: {
		Palette: Palette{
			ActiveText:        "rgb(252, 252, 250)",
			DefaultText:       "rgb(147, 146, 147)",
			InactiveText:      "#444344",
			ActiveBackground:  "#444344",
			DefaultBackground: "rgb(45, 42, 46)",
			InputBackground:   "rgb(25, 24, 26)",
			Accent:            "rgb(255, 216, 102)",
			ErrorBackground:   "#ffcdca",
			ErrorForeground:   "#811e18",
		},
		Syntax: Syntax{
			Plain:       Color("rgb(252, 252, 250)"),
			Comment:     Styled(SyntaxStyle{Color: "#757575", FontStyle: "italic"}),
			Keyword:     Color("rgb(255, 97, 136)"),
			Tag:         Color("rgb(120, 220, 232)"),
			Punctuation: Color("rgb(147, 146, 147)"),
			Definition:  Color("rgb(169, 220, 118)"),
			Property:    Styled(SyntaxStyle{Color: "rgb(120, 220, 232)", FontStyle: "italic"}),
			Static:      Color("rgb(171, 157, 242)"),
			String:      Color("rgb(255, 216, 102)"),
		},
		Typography: defaultTypography,
	},
}
