package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Size devuelve el tamaño de la terminal, o 80x24 si no hay terminal.
func Size() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return defaultWidth, defaultHeight
	}
	return width, height
}

func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Fill rellena con líneas vacías hasta height para que la vista ocupe la pantalla.
func Fill(s string, height int) string {
	lines := strings.Count(s, "\n")
	if lines >= height {
		return s
	}
	return s + strings.Repeat("\n", height-lines)
}
