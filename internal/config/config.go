package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Normal map[string]string `toml:"normal"`
	Insert map[string]string `toml:"insert"`
}

type EditorOptions struct {
	TabWidth    int    `toml:"tab-width"`
	LineNumbers bool   `toml:"line-numbers"`
	Backspace   string `toml:"backspace"`
}

// Theme holds 256-color palette indices for the status bar segments.
type Theme struct {
	StatusFilenameFg int `toml:"status-filename-fg"`
	StatusModeFg     int `toml:"status-mode-fg"`
	StatusMessageFg  int `toml:"status-message-fg"`
	StatusCommandFg  int `toml:"status-command-fg"`
	StatusInfoFg     int `toml:"status-info-fg"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:    4,
			LineNumbers: true,
			Backspace:   "simple",
		},
		Theme: Theme{
			StatusFilenameFg: 231,
			StatusModeFg:     213,
			StatusMessageFg:  220,
			StatusCommandFg:  117,
			StatusInfoFg:     255,
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"h":     "move_left",
				"j":     "move_down",
				"k":     "move_up",
				"l":     "move_right",
				"left":  "move_left",
				"down":  "move_down",
				"up":    "move_up",
				"right": "move_right",
				"0":     "line_start",
				"$":     "line_end",
				"g":     "file_start",
				"G":     "file_end",
				"x":     "delete_char",
				"d":     "delete_line",
				"u":     "undo",
				"/":     "search",
				"i":     "enter_insert",
				":":     "enter_command",
				"q":     "quit",
			},
			Insert: map[string]string{
				"esc":       "enter_normal",
				"left":      "move_left",
				"down":      "move_down",
				"up":        "move_up",
				"right":     "move_right",
				"backspace": "backspace",
				"enter":     "newline",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	return Merge(cfg, string(data))
}

// Merge overlays a TOML document onto cfg. Unset fields keep their
// defaults; keymap entries are merged key by key.
func Merge(cfg Config, data string) (Config, error) {
	var userCfg Config
	if _, err := toml.Decode(data, &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.Backspace != "" {
		cfg.Editor.Backspace = userCfg.Editor.Backspace
	}
	// line-numbers defaults to on; only an explicit false in the file wins.
	var raw struct {
		Editor struct {
			LineNumbers *bool `toml:"line-numbers"`
		} `toml:"editor"`
	}
	if _, err := toml.Decode(data, &raw); err == nil && raw.Editor.LineNumbers != nil {
		cfg.Editor.LineNumbers = *raw.Editor.LineNumbers
	}
	if userCfg.Theme.StatusFilenameFg > 0 {
		cfg.Theme.StatusFilenameFg = userCfg.Theme.StatusFilenameFg
	}
	if userCfg.Theme.StatusModeFg > 0 {
		cfg.Theme.StatusModeFg = userCfg.Theme.StatusModeFg
	}
	if userCfg.Theme.StatusMessageFg > 0 {
		cfg.Theme.StatusMessageFg = userCfg.Theme.StatusMessageFg
	}
	if userCfg.Theme.StatusCommandFg > 0 {
		cfg.Theme.StatusCommandFg = userCfg.Theme.StatusCommandFg
	}
	if userCfg.Theme.StatusInfoFg > 0 {
		cfg.Theme.StatusInfoFg = userCfg.Theme.StatusInfoFg
	}
	if userCfg.Keymap.Normal != nil {
		for k, v := range userCfg.Keymap.Normal {
			cfg.Keymap.Normal[k] = v
		}
	}
	if userCfg.Keymap.Insert != nil {
		for k, v := range userCfg.Keymap.Insert {
			cfg.Keymap.Insert[k] = v
		}
	}

	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("EEP_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "eep"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "eep"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
