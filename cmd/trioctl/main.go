// Command trioctl checks screen declaration files and previews the screen
// tree they describe, without the application's real screens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/trio/pkg/trio"
)

const (
	exitOK    = 0
	exitError = 1
)

var (
	resourceRoot string
	resourceExt  string
	logLevel     string
	lang         string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trioctl",
		Short:         "Inspect screen declaration files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			trio.Init(trio.Options{LogLevel: logLevel}.WithEnvironment())
		},
	}

	root.PersistentFlags().StringVar(&resourceRoot, "resources", "", "directory view resources resolve against (default: the file's directory)")
	root.PersistentFlags().StringVar(&resourceExt, "ext", "", "conventional view resource suffix (default: .view)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&lang, "lang", "en", "language for progress output")

	root.AddCommand(newCheckCmd(), newTreeCmd(), newBuildCmd(), newWatchCmd())
	return root
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defer trio.Close()

	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		trio.GetLogger().Debug("trioctl failed", "error", err)
		fmt.Fprintf(root.ErrOrStderr(), "trioctl: %v\n", err)
		return exitError
	}
	return exitOK
}
