package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ispapp/sandpad/internal/validation"
	"github.com/ispapp/sandpad/pkg/code"
)

// EnvPrefix prefixes environment overrides, e.g. SANDPAD_THEME=dark.
const EnvPrefix = "SANDPAD"

// AppSettings holds all application settings
type AppSettings struct {
	// Editor Settings
	Theme           string  `json:"theme" mapstructure:"theme" validate:"required,theme"`
	ThemeFile       string  `json:"theme_file" mapstructure:"theme_file"`
	FontSize        float32 `json:"font_size" mapstructure:"font_size" validate:"omitempty,min=8,max=48"`
	TabSize         int     `json:"tab_size" mapstructure:"tab_size" validate:"min=1,max=16"`
	WordWrap        bool    `json:"word_wrap" mapstructure:"word_wrap"`
	ShowLineNumbers bool    `json:"show_line_numbers" mapstructure:"show_line_numbers"`

	// Preview Settings
	PreviewHeight string `json:"preview_height" mapstructure:"preview_height" validate:"omitempty,csslength"`
	PreviewAddr   string `json:"preview_addr" mapstructure:"preview_addr" validate:"omitempty,hostname_port"` // empty picks a free local port

	// Compiler Settings
	NodePath             string `json:"node_path" mapstructure:"node_path"`
	NodeModules          string `json:"node_modules" mapstructure:"node_modules"`
	NormalizeScriptSetup bool   `json:"normalize_script_setup" mapstructure:"normalize_script_setup"`

	// Storage Settings
	DatabasePath string `json:"database_path" mapstructure:"database_path" validate:"required"`
	AutoSave     bool   `json:"auto_save" mapstructure:"auto_save"`

	// UI Settings
	WindowWidth  int    `json:"window_width" mapstructure:"window_width" validate:"gt=0"`
	WindowHeight int    `json:"window_height" mapstructure:"window_height" validate:"gt=0"`
	LogLevel     string `json:"log_level" mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
}

// DefaultSettings returns the default application settings
func DefaultSettings() *AppSettings {
	return &AppSettings{
		Theme:           string(code.ThemeLight),
		TabSize:         2,
		ShowLineNumbers: true,

		PreviewHeight: "500px",

		NormalizeScriptSetup: true,

		DatabasePath: filepath.Join(configDir(), "workspace.db"),
		AutoSave:     true,

		WindowWidth:  1280,
		WindowHeight: 800,
		LogLevel:     "info",
	}
}

// Global settings instance
var Current *AppSettings

var settingsPath = filepath.Join(configDir(), "settings.json")

// Path returns the settings file in use.
func Path() string {
	return settingsPath
}

// SetPath points Initialize, Load and Save at another settings file.
func SetPath(path string) {
	settingsPath = path
}

// RefreshCurrent returns the current settings, loading them on first use.
func RefreshCurrent() *AppSettings {
	if Current == nil {
		s, err := Read(settingsPath)
		if err != nil {
			s = DefaultSettings()
		}
		Current = s
	}
	return Current
}

// Initialize loads settings from file or creates default settings
func Initialize() error {
	Current = DefaultSettings()

	if _, err := os.Stat(settingsPath); errors.Is(err, os.ErrNotExist) {
		// Settings file doesn't exist, create it with defaults
		return Save()
	}

	return Load()
}

// Load reads settings from the settings file into Current
func Load() error {
	s, err := Read(settingsPath)
	if err != nil {
		return err
	}
	Current = s
	return nil
}

// Read loads the settings file at path over the defaults. SANDPAD_*
// environment variables take precedence over the file.
func Read(path string) (*AppSettings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := &AppSettings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s, nil
}

func setDefaults(v *viper.Viper, d *AppSettings) {
	data, _ := json.Marshal(d)
	var values map[string]any
	_ = json.Unmarshal(data, &values)
	for key, value := range values {
		v.SetDefault(key, value)
	}
}

// Save writes current settings to the settings file
func Save() error {
	if Current == nil {
		Current = DefaultSettings()
	}
	return Write(Current, settingsPath)
}

// Write stores s as indented JSON at path.
func Write(s *AppSettings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func configDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".sandpad")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validation.New()
	_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		return code.ThemeName(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks every field and reports all problems at once.
func (s *AppSettings) Validate() error {
	problems := s.Problems()
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
}

// Problems returns one readable message per invalid field.
func (s *AppSettings) Problems() []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return problems
}

func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "Theme":
		return fmt.Sprintf("Theme %q is not one of %v", fe.Value(), code.ThemeNames())
	case "FontSize":
		return "Font size must be between 8 and 48"
	case "TabSize":
		return "Tab size must be between 1 and 16"
	case "PreviewHeight":
		return fmt.Sprintf("Preview height %q is not a CSS length", fe.Value())
	case "PreviewAddr":
		return fmt.Sprintf("Preview address %q must be host:port", fe.Value())
	case "LogLevel":
		return fmt.Sprintf("Log level %q is not one of trace, debug, info, warn, error", fe.Value())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// ThemeName returns the configured theme name.
func (s *AppSettings) ThemeName() code.ThemeName {
	return code.ThemeName(s.Theme)
}

// LoadTheme returns the custom theme file when set, otherwise the named theme.
func (s *AppSettings) LoadTheme() (code.Theme, error) {
	if s.ThemeFile != "" {
		return code.LoadThemeFile(s.ThemeFile)
	}
	return code.Lookup(s.ThemeName())
}

// EditorOptions converts the editor fields to code.Options.
func (s *AppSettings) EditorOptions() code.Options {
	return code.Options{
		FontSize:        code.ClampFontSize(s.FontSize),
		TabSize:         s.TabSize,
		WordWrap:        s.WordWrap,
		ShowLineNumbers: s.ShowLineNumbers,
	}
}

// SetEditorOptions copies editor options back into the settings.
func (s *AppSettings) SetEditorOptions(o code.Options) {
	s.FontSize = o.FontSize
	s.TabSize = o.TabSize
	s.WordWrap = o.WordWrap
	s.ShowLineNumbers = o.ShowLineNumbers
}

// Helper functions to convert settings to/from strings for UI
func (s *AppSettings) GetFontSizeString() string {
	if s.FontSize == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(s.FontSize), 'f', -1, 32)
}

func (s *AppSettings) SetFontSizeString(value string) error {
	if strings.TrimSpace(value) == "" {
		s.FontSize = 0
		return nil
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
	if err != nil {
		return err
	}
	s.FontSize = float32(size)
	return nil
}

func (s *AppSettings) GetTabSizeString() string {
	return strconv.Itoa(s.TabSize)
}

func (s *AppSettings) SetTabSizeString(value string) error {
	size, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	s.TabSize = size
	return nil
}
