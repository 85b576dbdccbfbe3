package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Colors follow color.NoColor, so piped output and NO_COLOR stay plain.
var (
	good  = color.New(color.FgGreen, color.Bold)
	bad   = color.New(color.FgRed)
	faint = color.New(color.Faint)
	title = color.New(color.Bold)
)

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func cprintf(cmd *cobra.Command, c *color.Color, format string, args ...any) {
	c.Fprintf(cmd.OutOrStdout(), format, args...)
}

func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
}
