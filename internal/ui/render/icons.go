package render

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/kk-code-lab/vfm/internal/fs"
)

var textExtensions = map[string]bool{
	"txt": true, "md": true, "markdown": true, "rst": true, "log": true,
	"json": true, "yaml": true, "yml": true, "toml": true, "ini": true, "csv": true,
	"go": true, "rs": true, "py": true, "js": true, "ts": true, "c": true, "h": true,
	"cpp": true, "java": true, "sh": true, "html": true, "css": true, "xml": true,
}

// iconFor picks the configured glyph for an entry from its kind and
// extension. File types are looked up in filetype's registry.
func (r *Renderer) iconFor(e fs.Entry) string {
	if !r.icons.Enabled {
		return ""
	}
	switch {
	case e.IsSymlink:
		return r.icons.Symlink
	case e.IsDir:
		return r.icons.Folder
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name), "."))
	if ext == "" {
		return r.icons.File
	}
	if textExtensions[ext] {
		return r.icons.Text
	}

	kind := filetype.GetType(ext)
	if kind == filetype.Unknown {
		return r.icons.Unknown
	}
	if _, ok := matchers.Archive[kind]; ok {
		return r.icons.Archive
	}
	switch kind.MIME.Type {
	case "image":
		return r.icons.Image
	case "video":
		return r.icons.Video
	case "audio":
		return r.icons.Audio
	}
	return r.icons.File
}
