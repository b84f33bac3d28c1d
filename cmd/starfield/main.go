// Command starfield previews the site's star field in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/SengdowJones/portfolio/internal/preview"
	"github.com/SengdowJones/portfolio/internal/starfield"
)

func main() {
	count := flag.Int("count", starfield.DefaultCount, "Number of stars")
	seed := flag.Int64("seed", starfield.DefaultSeed, "Layout seed")
	printMode := flag.Bool("print", false, "Print one frame instead of running the TUI")
	flag.Parse()

	if *count < 0 {
		fmt.Fprintf(os.Stderr, "starfield: -count must not be negative (got %d)\n", *count)
		os.Exit(2)
	}

	if *printMode {
		stars, err := starfield.Generate(*count, *seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "starfield: %v\n", err)
			os.Exit(1)
		}
		width, height := 80, 24
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width, height = w, h-1
			}
		}
		fmt.Println(preview.Render(stars, width, height, 1))
		return
	}

	p := tea.NewProgram(preview.NewModel(*count, *seed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "starfield: %v\n", err)
		os.Exit(1)
	}
}
