package mobdef

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed defs
var embeddedDefs embed.FS

// DefaultBase returns the bundled base definitions shipped with the
// binary. Extended and patch layers stack on top of these.
func DefaultBase() fs.FS {
	sub, err := fs.Sub(embeddedDefs, "defs")
	if err != nil {
		panic(fmt.Sprintf("mobdef: embedded defs unavailable: %v", err))
	}
	return sub
}
