package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName = "BlinkRest"
	appID   = "com.blinkrest.app"

	trayFlag = "tray"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		jsonLogs bool
		toTray   bool
	)

	root := &cobra.Command{
		Use:           "blinkrest",
		Short:         "Guided blinking, palming and tear film stability exercises",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGUI(jsonLogs, toTray)
		},
	}
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON")
	root.Flags().BoolVar(&toTray, trayFlag, false, "Start hidden in the system tray")

	root.AddCommand(newTermCmd(&jsonLogs))
	root.AddCommand(newClassifyCmd())
	return root
}
