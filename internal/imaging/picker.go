package imaging

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Pick chooses a backend from the configured setting and the terminal's
// colour support. It returns nil when image previews are disabled.
func Pick(setting string, colors int, out *os.File) Backend {
	switch setting {
	case "none":
		return nil
	case "halfblock":
		return HalfBlock{}
	case "ascii":
		return ASCII{}
	}

	if out != nil {
		fd := out.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return ASCII{}
		}
	}
	if colors < 8 {
		return ASCII{}
	}
	return HalfBlock{}
}
