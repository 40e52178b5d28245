package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeySpace     = " "
	KeyUp        = "up"
	KeyDown      = "down"
	KeyJ         = "j"
	KeyK         = "k"
	KeyEnter     = "enter"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyTop       = "g"
	KeyBottom    = "G"
	KeyFollow    = "f"
	KeyOpen      = "o"
	KeyOpenUpper = "O"
	KeyEscape    = "esc"
	KeyBackspace = "backspace"
)

// seekStepSeconds is the jump applied by the left/right keys.
const seekStepSeconds = 5.0
