package sheetkit

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"

	"sheetkit/layout"
)

// LoadImage reads and decodes the image at path, returning the decoded
// format name. PNG, GIF, JPEG and WEBP are understood.
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "open sheet")
	}
	defer f.Close()
	m, format, err := image.Decode(f)
	if err != nil {
		return nil, "", errors.Wrapf(err, "decode %s", path)
	}
	return m, format, nil
}

// SaveImage writes m to path as PNG, the only output format that keeps
// the alpha channel the tools depend on.
func SaveImage(path string, m image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create sheet")
	}
	if err := png.Encode(f, m); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// LoadSidecar reads the layout sidecar belonging to the image at
// imagePath. A missing sidecar is not an error; it returns (nil, nil).
func LoadSidecar(imagePath string) (*layout.Config, error) {
	p := layout.SidecarPath(imagePath)
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "open sidecar")
	}
	defer f.Close()
	c, err := layout.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", p)
	}
	return c, nil
}

// SaveSidecar writes c as the sidecar for the image at imagePath.
func SaveSidecar(imagePath string, c *layout.Config) error {
	p := layout.SidecarPath(imagePath)
	f, err := os.Create(p)
	if err != nil {
		return errors.Wrap(err, "create sidecar")
	}
	if err := layout.Encode(f, c); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", p)
	}
	return errors.Wrapf(f.Close(), "close %s", p)
}
