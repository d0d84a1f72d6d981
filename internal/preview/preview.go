// Package preview loads and classifies the file under the cursor.
package preview

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/highlight"
	"github.com/kk-code-lab/vfm/internal/mismatch"
)

// Kind classifies a preview payload.
type Kind int

const (
	Empty Kind = iota
	Text
	Image
	Binary
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Image:
		return "image"
	case Binary:
		return "binary"
	default:
		return "empty"
	}
}

// Preview is the loaded state of one file. Only the fields for its Kind are
// set, apart from Metadata which is always filled.
type Preview struct {
	Path     string
	Kind     Kind
	Metadata fs.Metadata

	Text        string
	Truncated   bool
	Highlighted []highlight.Line

	Width, Height int
	Image         image.Image

	Size int64

	// Mismatch is nil unless mismatch checking was requested.
	Mismatch *mismatch.Result
}

// Options tune a Load call.
type Options struct {
	CheckMismatch bool
	DecodeImages  bool
	Highlighter   *highlight.Highlighter
	Limit         int
}

// Load reads at most opts.Limit bytes of path and classifies them. Images are
// decoded in full when DecodeImages is set; a failed decode falls back to the
// text/binary classification.
func Load(path string, opts Options) (*Preview, error) {
	meta, info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", path, err)
	}
	p := &Preview{Path: path, Kind: Empty, Metadata: meta, Size: info.Size()}
	if !info.Mode().IsRegular() {
		return p, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = fs.PreviewReadLimit
	}
	head, truncated, err := fs.ReadFileHead(path, limit)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", path, err)
	}

	if opts.CheckMismatch {
		res := mismatch.Classify(path, head)
		p.Mismatch = &res
	}

	if opts.DecodeImages && len(head) > 0 && filetype.IsImage(head) {
		if img, ok := decodeImage(path); ok {
			b := img.Bounds()
			p.Kind = Image
			p.Image = img
			p.Width, p.Height = b.Dx(), b.Dy()
			return p, nil
		}
	}

	switch {
	case len(head) == 0:
		p.Kind = Empty
	default:
		if text, ok := fs.DecodeText(head, truncated); ok {
			p.Kind = Text
			p.Text = text
			p.Truncated = truncated
			if opts.Highlighter != nil {
				p.Highlighted = opts.Highlighter.Highlight(path, text)
			}
		} else {
			p.Kind = Binary
		}
	}
	return p, nil
}

func decodeImage(path string) (image.Image, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer func() {
		_ = f.Close()
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, false
	}
	return img, true
}
