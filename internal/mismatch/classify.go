// Package mismatch compares a file's magic bytes with the type its extension
// claims.
package mismatch

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Kind enumerates classification outcomes.
type Kind int

const (
	Unknown Kind = iota
	Match
	Mismatch
)

func (k Kind) String() string {
	switch k {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Result is the outcome of Classify. Detected and Claimed are only set for
// Mismatch.
type Result struct {
	Kind         Kind
	Detected     string
	DetectedMIME string
	Claimed      string
}

var aliases = map[string]string{
	"jpeg": "jpg",
	"jpe":  "jpg",
	"tiff": "tif",
	"htm":  "html",
	"yml":  "yaml",
	"oga":  "ogg",
	"ogv":  "ogg",
	"ogm":  "ogg",
}

func normalize(ext string) string {
	if alias, ok := aliases[ext]; ok {
		return alias
	}
	return ext
}

// Classify inspects the leading bytes of a file named path. Content without a
// recognised signature, or a path without an extension, is Unknown.
func Classify(path string, head []byte) Result {
	if len(head) == 0 {
		return Result{Kind: Unknown}
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return Result{Kind: Unknown}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return Result{Kind: Unknown}
	}
	if normalize(ext) == normalize(kind.Extension) {
		return Result{Kind: Match}
	}
	return Result{
		Kind:         Mismatch,
		Detected:     kind.Extension,
		DetectedMIME: kind.MIME.Value,
		Claimed:      ext,
	}
}
