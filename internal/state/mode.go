package state

// Mode is the top-level interaction mode. Exactly one is active.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeMarkerList
	ModeProgramList
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeMarkerList:
		return "markers"
	case ModeProgramList:
		return "programs"
	default:
		return "normal"
	}
}

// Prefix is the first key of a two-key command waiting for its second key.
type Prefix int

const (
	PrefixNone Prefix = iota
	PrefixAdd
	PrefixSettings
	PrefixCopy
	PrefixView
	PrefixDelete
	PrefixOpenWith
)

func (p Prefix) String() string {
	switch p {
	case PrefixAdd:
		return "add"
	case PrefixSettings:
		return "settings"
	case PrefixCopy:
		return "copy"
	case PrefixView:
		return "view"
	case PrefixDelete:
		return "delete"
	case PrefixOpenWith:
		return "open with"
	default:
		return ""
	}
}

// InputAction is what an input prompt will do with its buffer.
type InputAction int

const (
	InputSearch InputAction = iota
	InputMarkerSearch
	InputAddFile
	InputAddDir
	InputRename
	InputMarkerSet
	InputMarkerJump
	InputMarkerRename
	InputMarkerEditPath
	InputMarkerCreateName
	InputMarkerCreatePath
	InputConfirmDelete
)

var inputTitles = map[InputAction]string{
	InputSearch:           "Search (regex)",
	InputMarkerSearch:     "Search Markers (n:/p:)",
	InputAddFile:          "Add File",
	InputAddDir:           "Add Dir",
	InputRename:           "Rename",
	InputMarkerSet:        "Set Marker",
	InputMarkerJump:       "Jump Marker",
	InputMarkerRename:     "Rename Marker",
	InputMarkerEditPath:   "Edit Marker Path",
	InputMarkerCreateName: "New Marker Name",
	InputMarkerCreatePath: "New Marker Path",
	InputConfirmDelete:    "Delete",
}

// Title is the prompt label shown above the input line.
func (a InputAction) Title() string {
	return inputTitles[a]
}

// Input is an active prompt. Marker names the marker being edited for the
// marker actions that carry one.
type Input struct {
	Action InputAction
	Buffer []rune
	Marker string
}

func (in *Input) text() string {
	return string(in.Buffer)
}
