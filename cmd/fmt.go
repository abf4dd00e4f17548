package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// printMarkdown renders markdown for the terminal. When stdout is not a
// terminal, or rendering fails, the raw markdown is printed instead.
func printMarkdown(doc string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(doc)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}
