package pages

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// LogoPath is where the site logo is served. It doubles as the image
// placeholder.
const LogoPath = "/static/logo.svg"

// Static returns the files served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
