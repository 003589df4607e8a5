package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown when a server starts.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// S, I, R in the colors used by the graph export
	lines := []termenv.Style{
		termenv.String("   ___                          _                 _      ").Foreground(p.Color("#38bdf8")),
		termenv.String("  / __|___ _ __  _ __  __ _ _ _| |_ _ __  ___ _ _| |_ ___").Foreground(p.Color("#60a5fa")),
		termenv.String(" | (__/ _ \\ '  \\| '_ \\/ _` | '_|  _| '  \\/ -_) ' \\  _(_-<").Foreground(p.Color("#f87171")),
		termenv.String("  \\___\\___/_|_|_| .__/\\__,_|_|  \\__|_|_|_\\___|_||_\\__/__/").Foreground(p.Color("#fb923c")),
		termenv.String("                |_|                                       ").Foreground(p.Color("#4ade80")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}
