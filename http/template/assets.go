package template

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/xy-planning-network/wayfinder"
)

// AssetsPrefix is the URL path static assets are served under.
const AssetsPrefix = "/assets/"

// NewAssetFS constructs an fs.FS for serving static assets.
// Files in the static/ directory of filesys take precedence
// over the ones embedded in this package.
//
// If filesys is nil, the current working directory is used.
func NewAssetFS(filesys fs.FS) fs.FS {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	user, err := fs.Sub(filesys, "static")
	if err != nil {
		user = filesys
	}

	pkg, _ := fs.Sub(staticFS, "static")
	return newLayerFS(user, pkg)
}

// AssetURI encloses the environment and filesystem so when called executing a template,
// emits the URI a static asset is served at.
//
// Outside of development, fingerprinted copies named like "css/app-<hash>.css" are preferred.
// It returns "assetURI" as the name of the function for convenient passing to a template.FuncMap.
func AssetURI(env wayfinder.Environment, filesys fs.FS) (string, func(string) string) {
	return "assetURI", func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")
		if env.IsDevelopment() || env.IsTesting() || filesys == nil {
			return AssetsPrefix + assetPath
		}

		ext := path.Ext(assetPath)
		glob := fmt.Sprintf("%s-*%s", strings.TrimSuffix(assetPath, ext), ext)
		matches, err := fs.Glob(filesys, glob)
		if err != nil || len(matches) == 0 {
			return AssetsPrefix + assetPath
		}

		return AssetsPrefix + matches[0]
	}
}
