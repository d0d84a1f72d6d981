package keymap

import (
	"errors"
	"fmt"
	"sort"
)

// Context selects which binding table a key is looked up in: Normal mode,
// the second key of a prefix, or a popup.
type Context string

const (
	Normal     Context = "normal"
	Add        Context = "add"
	Settings   Context = "settings"
	View       Context = "view"
	Copy       Context = "copy"
	Delete     Context = "delete"
	MarkerList Context = "marker_list"
	OpenWith   Context = "open_with"
)

// Action names a bindable command within a context.
type Action string

// Normal mode.
const (
	Quit           Action = "quit"
	Up             Action = "up"
	Down           Action = "down"
	Top            Action = "top"
	Bottom         Action = "bottom"
	PageUp         Action = "page_up"
	PageDown       Action = "page_down"
	Parent         Action = "parent"
	Open           Action = "open"
	Search         Action = "search"
	AddPrefix      Action = "add"
	Rename         Action = "rename"
	DeletePrefix   Action = "delete"
	MarkerSet      Action = "marker_set"
	MarkerOpen     Action = "marker_list"
	MarkerJump     Action = "marker_jump"
	SettingsPrefix Action = "settings"
	ViewPrefix     Action = "view"
	CopyPrefix     Action = "copy"
	Cut            Action = "cut"
	Paste          Action = "paste"
	Refresh        Action = "refresh"
	OpenShell      Action = "open_shell"
	OpenWithPicker Action = "open_with_picker"
	OpenWithQuick  Action = "open_with_quick"
	Stop           Action = "stop"
)

// Prefix second keys.
const (
	AddDir                Action = "dir"
	TogglePermissions     Action = "toggle_permissions"
	ToggleDates           Action = "toggle_dates"
	ToggleOwner           Action = "toggle_owner"
	ToggleMetadata        Action = "toggle_metadata"
	ToggleHidden          Action = "toggle_hidden"
	ToggleListPermissions Action = "toggle_list_permissions"
	ToggleListOwner       Action = "toggle_list_owner"
	CopyPath              Action = "copy_path"
	ConfirmDelete         Action = "confirm"
)

// Popups.
const (
	Close     Action = "close"
	Select    Action = "open"
	MarkerRen Action = "rename"
	EditPath  Action = "edit_path"
	Remove    Action = "delete"
	Create    Action = "add"
	Filter    Action = "search"
	Backspace Action = "backspace"
)

type binding struct {
	action Action
	keys   []string
}

var defaults = map[Context][]binding{
	Normal: {
		{Quit, []string{"q", "ctrl+c"}},
		{Up, []string{"k", "up"}},
		{Down, []string{"j", "down"}},
		{Top, []string{"g", "home"}},
		{Bottom, []string{"G", "end"}},
		{PageUp, []string{"pageup", "ctrl+u"}},
		{PageDown, []string{"pagedown", "ctrl+d"}},
		{Parent, []string{"h", "left", "backspace"}},
		{Open, []string{"l", "right", "enter"}},
		{Search, []string{"/"}},
		{AddPrefix, []string{"a"}},
		{Rename, []string{"r"}},
		{DeletePrefix, []string{"d"}},
		{MarkerSet, []string{"m"}},
		{MarkerOpen, []string{"M"}},
		{MarkerJump, []string{"'"}},
		{SettingsPrefix, []string{"s"}},
		{ViewPrefix, []string{"v"}},
		{CopyPrefix, []string{"y"}},
		{Cut, []string{"x"}},
		{Paste, []string{"p"}},
		{Refresh, []string{"ctrl+r"}},
		{OpenShell, []string{"S"}},
		{OpenWithPicker, []string{"O"}},
		{OpenWithQuick, []string{"o"}},
		{Stop, []string{"ctrl+z"}},
	},
	Add: {
		{AddDir, []string{"d"}},
	},
	Settings: {
		{TogglePermissions, []string{"p"}},
		{ToggleDates, []string{"d"}},
		{ToggleOwner, []string{"o"}},
		{ToggleMetadata, []string{"m"}},
		{ToggleHidden, []string{"h", "."}},
	},
	View: {
		{ToggleListPermissions, []string{"p"}},
		{ToggleListOwner, []string{"o"}},
	},
	Copy: {
		{CopyPath, []string{"p"}},
	},
	Delete: {
		{ConfirmDelete, []string{"d"}},
	},
	MarkerList: {
		{Close, []string{"esc", "q"}},
		{Up, []string{"k", "up"}},
		{Down, []string{"j", "down"}},
		{Select, []string{"enter", "l"}},
		{MarkerRen, []string{"r"}},
		{EditPath, []string{"e"}},
		{Remove, []string{"d"}},
		{Create, []string{"a"}},
		{Filter, []string{"/"}},
	},
	OpenWith: {
		{Close, []string{"esc"}},
		{Up, []string{"up", "ctrl+k"}},
		{Down, []string{"down", "ctrl+j"}},
		{Select, []string{"enter"}},
		{Backspace, []string{"backspace"}},
	},
}

// Map is the resolved binding table.
type Map struct {
	table map[Context]map[Key]Action
	keys  map[Context]map[Action][]Key
}

// Default resolves the built-in bindings.
func Default() *Map {
	m, _ := Build(nil)
	return m
}

// Build resolves the defaults with per-context overrides. An override replaces
// the whole key list of its action and takes the key away from any default
// action that also used it. Problems are reported together; the returned map
// is always usable and skips only the offending entries.
func Build(overrides map[string]map[string][]string) (*Map, error) {
	m := &Map{
		table: make(map[Context]map[Key]Action),
		keys:  make(map[Context]map[Action][]Key),
	}
	var errs []error

	known := make(map[Context]map[Action]bool, len(defaults))
	for ctx, list := range defaults {
		known[ctx] = make(map[Action]bool, len(list))
		for _, b := range list {
			known[ctx][b.action] = true
		}
	}

	for ctxName, actions := range overrides {
		ctx := Context(ctxName)
		if known[ctx] == nil {
			errs = append(errs, fmt.Errorf("unknown key context %q", ctxName))
			continue
		}
		for actionName := range actions {
			if !known[ctx][Action(actionName)] {
				errs = append(errs, fmt.Errorf("unknown action %q in [keys.%s]", actionName, ctxName))
			}
		}
	}

	for ctx, list := range defaults {
		table := make(map[Key]Action)
		keys := make(map[Action][]Key)
		custom := overrides[string(ctx)]

		assign := func(action Action, specs []string) {
			for _, spec := range specs {
				k, err := Parse(spec)
				if err != nil {
					errs = append(errs, fmt.Errorf("[keys.%s] %s: %w", ctx, action, err))
					continue
				}
				if prev, taken := table[k]; taken && prev != action {
					keys[prev] = removeKey(keys[prev], k)
				}
				table[k] = action
				keys[action] = append(keys[action], k)
			}
		}

		for _, b := range list {
			if _, overridden := custom[string(b.action)]; overridden {
				continue
			}
			assign(b.action, b.keys)
		}
		for _, b := range list {
			if specs, overridden := custom[string(b.action)]; overridden {
				assign(b.action, specs)
			}
		}

		m.table[ctx] = table
		m.keys[ctx] = keys
	}

	sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return m, errors.Join(errs...)
}

func removeKey(keys []Key, k Key) []Key {
	out := keys[:0]
	for _, existing := range keys {
		if existing != k {
			out = append(out, existing)
		}
	}
	return out
}

// Lookup returns the action bound to k in ctx.
func (m *Map) Lookup(ctx Context, k Key) (Action, bool) {
	action, ok := m.table[ctx][k]
	return action, ok
}

// Keys lists the keys bound to action in ctx, in binding order.
func (m *Map) Keys(ctx Context, action Action) []Key {
	return m.keys[ctx][action]
}

// Hint renders the first binding of action for help text, or "" if unbound.
func (m *Map) Hint(ctx Context, action Action) string {
	keys := m.Keys(ctx, action)
	if len(keys) == 0 {
		return ""
	}
	return keys[0].String()
}
