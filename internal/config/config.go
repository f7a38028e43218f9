package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Output       string `mapstructure:"output"`
	Fullscreen   bool   `mapstructure:"fullscreen"`
	Maximized    bool   `mapstructure:"maximized"`
	Watch        bool   `mapstructure:"watch"`
	DebounceMS   int    `mapstructure:"debounce_ms"`
	LogMode      string `mapstructure:"log_mode"`
	LogFile      string `mapstructure:"log_file"`
	Shell        string `mapstructure:"shell"`
	ExportWidth  int    `mapstructure:"export_width"`
	ExportHeight int    `mapstructure:"export_height"`
	FontFile     string `mapstructure:"font_file"`
	Defaults     string `mapstructure:"defaults"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("output", "")
	viper.SetDefault("fullscreen", true)
	viper.SetDefault("maximized", false)
	viper.SetDefault("watch", true)
	viper.SetDefault("debounce_ms", 100)
	viper.SetDefault("log_mode", "dev")
	viper.SetDefault("log_file", "")
	viper.SetDefault("shell", getDefaultShell())
	viper.SetDefault("export_width", 1024)
	viper.SetDefault("export_height", 768)
	viper.SetDefault("font_file", "")
	viper.SetDefault("defaults", "") // Config line seeding every deck, e.g. "[font=Sans 40px]"

	viper.SetConfigName("pinpoint")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "pinpoint"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("PINPOINT")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetOutput returns the export target, empty for the interactive viewer
func GetOutput() string {
	return expandTilde(viper.GetString("output"))
}

// GetFullscreen returns whether the viewer takes over the whole terminal
func GetFullscreen() bool {
	return viper.GetBool("fullscreen")
}

// GetMaximized returns whether the viewer runs inline instead of fullscreen
func GetMaximized() bool {
	return viper.GetBool("maximized")
}

// GetWatch returns whether the presentation file is reloaded on change
func GetWatch() bool {
	return viper.GetBool("watch")
}

// GetDebounce returns how long to wait for edits to settle before reloading
func GetDebounce() time.Duration {
	ms := viper.GetInt("debounce_ms")
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// GetLogMode returns the logger mode (dev or prod)
func GetLogMode() string {
	return viper.GetString("log_mode")
}

// GetLogFile returns the log destination, empty for stderr
func GetLogFile() string {
	return expandTilde(viper.GetString("log_file"))
}

// GetShell returns the shell used for slide commands
func GetShell() string {
	return viper.GetString("shell")
}

// GetExportSize returns the pixel size of exported slides
func GetExportSize() (int, int) {
	return viper.GetInt("export_width"), viper.GetInt("export_height")
}

// GetFontFile returns the TrueType font used for export, empty for the built-in one
func GetFontFile() string {
	return expandTilde(viper.GetString("font_file"))
}

// GetDefaults returns the config line applied before the first slide
func GetDefaults() string {
	return viper.GetString("defaults")
}

// SetOutput sets output target at runtime
func SetOutput(path string) {
	viper.Set("output", path)
	C.Output = path
}

// SetFullscreen sets fullscreen mode at runtime
func SetFullscreen(on bool) {
	viper.Set("fullscreen", on)
	C.Fullscreen = on
}

// SetMaximized sets maximized mode at runtime
func SetMaximized(on bool) {
	viper.Set("maximized", on)
	C.Maximized = on
}

// SetWatch sets live reload at runtime
func SetWatch(on bool) {
	viper.Set("watch", on)
	C.Watch = on
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func getDefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}
