package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/trio/pkg/trio"
	"github.com/BrandonKowalski/trio/pkg/trio/constants"
	"github.com/BrandonKowalski/trio/pkg/trio/declare"
	"github.com/BrandonKowalski/trio/pkg/trio/progress"
	"github.com/BrandonKowalski/trio/pkg/trio/registry"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

func openSession(path string, hotReload bool) (*trio.Session, *registry.MemoryTree, error) {
	tree := registry.NewMemoryTree()
	sess, err := trio.Open(trio.Options{
		ScreensFile:  path,
		ResourceRoot: resourceRoot,
		ResourceExt:  resourceExt,
		HotReload:    hotReload,
	}, declare.LintCatalog{}, tree)
	return sess, tree, err
}

// =============================================================================
// CHECK
// =============================================================================

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a declaration file and list its screens in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := openSession(args[0], false)
			if err != nil {
				return err
			}
			defer sess.Close()
			return printCheck(cmd.OutOrStdout(), sess.Schema())
		},
	}
}

func printCheck(w io.Writer, s *schema.Schema) error {
	for _, e := range s.Entries() {
		ord, _ := s.Ordinal(e.Name)
		parent := e.Parent
		if parent == "" {
			parent = "-"
		}
		if _, err := fmt.Fprintf(w, "%3d  %-24s parent=%-16s resource=%s\n", ord, e.Name, parent, e.Resource); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "ok: %d screens\n", s.Len())
	return err
}

// =============================================================================
// TREE
// =============================================================================

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the screen hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := openSession(args[0], false)
			if err != nil {
				return err
			}
			defer sess.Close()
			printTree(cmd.OutOrStdout(), sess.Schema())
			return nil
		},
	}
}

// printTree writes every top-level screen and its descendants, indented by
// depth, in schema order.
func printTree(w io.Writer, s *schema.Schema) {
	for _, e := range s.Entries() {
		if e.Parent != "" {
			continue
		}
		fmt.Fprintln(w, e.Name)
		for _, d := range s.Descendants(e.Name) {
			depth := len(s.Ancestors(d))
			fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), d)
		}
	}
}

// =============================================================================
// BUILD
// =============================================================================

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <file>",
		Short: "Create every screen with placeholder objects and report progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, tree, err := openSession(args[0], false)
			if err != nil {
				return err
			}
			defer sess.Close()

			printer, err := progress.NewPrinter(lang)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			n, err := printer.Narrate(sess.Registry().CreateAllRemaining(), progress.PhaseCreate, func(line string) {
				fmt.Fprintln(out, line)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, printer.Done(n))

			if app, ok := sess.Registry().Trio(constants.AppScreen); ok && !tree.Attached(app.View()) {
				return fmt.Errorf("%s built but not attached", constants.AppScreen)
			}
			return nil
		},
	}
}

// =============================================================================
// WATCH
// =============================================================================

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Build every screen and rebuild them as their files change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watch(ctx, cmd.OutOrStdout(), args[0])
		},
	}
}

func watch(ctx context.Context, out io.Writer, path string) error {
	sess, _, err := openSession(path, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	printer, err := progress.NewPrinter(lang)
	if err != nil {
		return err
	}
	emit := func(line string) { fmt.Fprintln(out, line) }

	if _, err := printer.Narrate(sess.Registry().CreateAllRemaining(), progress.PhaseCreate, emit); err != nil {
		return err
	}
	if err := sess.Watch(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case req, ok := <-sess.Reloads():
			if !ok {
				return nil
			}
			reports, err := sess.HandleReload(ctx, req)
			if err != nil {
				if !trio.IsSchemaError(err) && !trio.IsStateError(err) {
					return err
				}
				emit("reload failed: " + err.Error())
				continue
			}
			for _, rep := range reports {
				emit(printer.Line(progress.PhaseReload, rep))
			}
		}
	}
}
