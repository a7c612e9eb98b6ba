// Package app wires the editor core to the terminal and runs the
// synchronous event loop: one event is fully processed and the screen
// repainted before the next is read.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/eep-editor/eep/internal/config"
	"github.com/eep-editor/eep/internal/editor"
	"github.com/eep-editor/eep/internal/logger"
	"github.com/eep-editor/eep/internal/term"
)

type Options struct {
	File      string
	Debug     bool
	Backspace string
	// LineNumbers overrides the config when set.
	LineNumbers *bool
}

func Run(opts Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.Backspace != "" {
		cfg.Editor.Backspace = opts.Backspace
	}
	if opts.LineNumbers != nil {
		cfg.Editor.LineNumbers = *opts.LineNumbers
	}
	if err := logger.Init(opts.Debug); err != nil {
		return err
	}
	defer logger.Close()

	ed := editor.New(cfg)
	if opts.File != "" {
		if err := ed.OpenFile(opts.File); err != nil {
			return fmt.Errorf("failed to open %s: %w", opts.File, err)
		}
	}

	scr, err := term.Open()
	if err != nil {
		return err
	}
	defer scr.Close()

	draw := func() {
		w, h := scr.Size()
		ed.ReconcileViewport(h-2, w)
		scr.Draw(ed.ComposeFrame(w, h))
	}
	draw()
	for {
		switch ev := scr.PollEvent().(type) {
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				logger.Info("quit")
				return nil
			}
		case *tcell.EventMouse:
			ed.HandleMouse(ev)
		case *tcell.EventResize:
			scr.Sync()
		}
		draw()
	}
}
