package platforms

import "strings"

const (
	defaultTrayAccountNumber = 3
	defaultWindowWidth       = 800
	defaultWindowHeight      = 450
	defaultImageExpiryDays   = 7
	defaultOverrideState     = -1
	closingMethodTaskKill    = "TaskKill"
	closingMethodCombined    = "Combined"
	startingMethodDefault    = "Default"
)

// Size is a window size in pixels.
type Size struct {
	X int `json:"X"`
	Y int `json:"Y"`
}

// DefaultWindowSize returns the initial window size of every platform page.
func DefaultWindowSize() Size {
	return Size{X: defaultWindowWidth, Y: defaultWindowHeight}
}

// windowsPath joins an install folder with its children using backslashes. The switched clients
// only exist on Windows, so their paths keep Windows separators on every host.
func windowsPath(folder string, elements ...string) string {
	joined := strings.TrimRight(folder, `\/`)
	for _, element := range elements {
		joined += `\` + element
	}
	return joined
}
