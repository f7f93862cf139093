package tui

// ViewState represents the current state of a TUI view.
type ViewState int

const (
	// ViewStateLoading indicates data is being fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList indicates the list is shown.
	ViewStateList
	// ViewStateQuitting indicates the program is exiting.
	ViewStateQuitting
)

// Key bindings shared by the views.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keySpace = " "
	keyEsc   = "esc"
	keySlash = "/"
	keyOpen  = "o"
	keyVideo = "v"
	keyCopy  = "y"
)

// Layout defaults.
const (
	defaultWidth  = 80
	defaultHeight = 24

	filterInputCharLimit = 64
	filterInputWidth     = 40
)
