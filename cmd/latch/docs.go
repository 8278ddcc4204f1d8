package latch

import (
	"embed"
	"io/fs"
)

//go:embed docs
var docsFS embed.FS

// docTree exposes the embedded documentation pages with the topic
// files at the root.
func docTree() fs.FS {
	sub, err := fs.Sub(docsFS, "docs")
	if err != nil {
		// Help topics degrade to none rather than failing startup
		return nil
	}
	return sub
}
