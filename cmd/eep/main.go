package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eep-editor/eep/internal/app"
)

func main() {
	var (
		debug       bool
		lineNumbers bool
		backspace   string
	)
	rootCmd := &cobra.Command{
		Use:           "eep [file]",
		Short:         "A small modal terminal text editor",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Options{Debug: debug, Backspace: backspace}
			if cmd.Flags().Changed("line-numbers") {
				opts.LineNumbers = &lineNumbers
			}
			if len(args) > 0 {
				opts.File = args[0]
			}
			return app.Run(opts)
		},
	}
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&lineNumbers, "line-numbers", true, "show the line number gutter")
	rootCmd.Flags().StringVar(&backspace, "backspace", "", "backspace policy: simple or smart-indent")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "eep:", err)
		os.Exit(1)
	}
}
