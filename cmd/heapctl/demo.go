package main

import (
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted allocation walkthrough with block chain dumps",
	Long: `demo performs a fixed sequence of alloc, free, realloc, and calloc
calls against a fresh arena and prints the block chain after each step,
showing first-fit placement, block splitting, and neighbor coalescing.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()

	printInfo("arena of %d bytes\n", h.Size())
	dump(h)

	a := h.Alloc(64)
	b := h.Alloc(128)
	c := h.Alloc(256)
	printInfo("\nalloc 64 -> %#x, alloc 128 -> %#x, alloc 256 -> %#x\n", a, b, c)
	dump(h)

	copy(h.Bytes(a), "first")
	copy(h.Bytes(c), "third")

	h.Free(b)
	printInfo("\nfree %#x leaves a hole between the neighbors\n", b)
	dump(h)

	d := h.Alloc(96)
	printInfo("\nalloc 96 -> %#x, first fit reuses the hole and splits it\n", d)
	dump(h)

	c2 := h.Realloc(c, 512)
	if c2 == c {
		printInfo("\nrealloc 256 -> 512 grew in place at %#x\n", c2)
	} else {
		printInfo("\nrealloc 256 -> 512 relocated %#x to %#x\n", c, c2)
	}
	printVerbose("payload after realloc: %q\n", h.Bytes(c2)[:5])
	dump(h)

	z := h.Calloc(8, 16)
	printInfo("\ncalloc 8x16 -> %#x, payload arrives zeroed\n", z)
	dump(h)

	h.Free(a)
	h.Free(d)
	h.Free(c2)
	h.Free(z)
	printInfo("\nafter releasing everything the arena coalesces back to one block\n")
	dump(h)
	return nil
}
