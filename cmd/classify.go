package main

import (
	"fmt"
	"io"
	"strconv"

	"blinkrest/internal/core/stability"

	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <seconds>",
		Short: "Classify a measured tear break-up time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse seconds %q: %w", args[0], err)
			}
			return printResult(cmd.OutOrStdout(), stability.Classify(seconds))
		},
	}
}

func printResult(out io.Writer, result stability.Result) error {
	_, err := fmt.Fprintf(out, "%.1fs  %s\n%s\n", result.Seconds, result.Category, result.Description)
	return err
}
