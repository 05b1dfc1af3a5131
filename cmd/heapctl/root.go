package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/heapalloc"
)

var (
	// Global flags
	heapSize uint64
	useMmap  bool
	verbose  bool
	quiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect a fixed-size heap arena",
	Long: `heapctl drives a heap allocator backed by a single fixed-size
arena. It can walk through a scripted allocation scenario with block
chain dumps after each step, or run a randomized alloc/free workload
and report fragmentation metrics at the end.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().
		Uint64Var(&heapSize, "size", 4096, "Arena size in bytes (0 uses the default heap size)")
	rootCmd.PersistentFlags().
		BoolVar(&useMmap, "mmap", false, "Back the arena with an anonymous memory mapping")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newHeap builds a heap from the global flags. Allocator diagnostics go
// to stderr so dumps on stdout stay machine-readable.
func newHeap() (*heapalloc.Heap, error) {
	var logOut io.Writer = os.Stderr
	if quiet {
		logOut = io.Discard
	}
	opts := []heapalloc.Option{
		heapalloc.WithLogger(slog.New(slog.NewTextHandler(logOut, nil))),
	}
	if useMmap {
		opts = append(opts, heapalloc.WithMmap())
	}
	return heapalloc.New(heapSize, opts...)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// dump writes the block chain to stdout unless quiet mode is enabled
func dump(h *heapalloc.Heap) {
	if !quiet {
		h.Dump(os.Stdout)
	}
}
