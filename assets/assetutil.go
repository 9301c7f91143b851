package assets

import (
	"io"
	"io/fs"

	"github.com/pkg/errors"
)

func ReadFile(name string) ([]byte, error) {
	f, err := Assets().Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "assets.ReadFile Open Error (use-filesystem: %v)", useFileSystem)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	return content, errors.Wrapf(err, "assets.ReadFile ReadAll Error (use-filesystem: %v)", useFileSystem)
}

// Sub returns the asset tree rooted at dir.
func Sub(dir string) (fs.FS, error) {
	sub, err := fs.Sub(Assets(), dir)
	return sub, errors.Wrapf(err, "assets.Sub Error (use-filesystem: %v)", useFileSystem)
}
