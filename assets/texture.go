package assets

import (
	"fmt"
	"image"
	_ "image/jpeg" // decoders
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// DecodeImage decodes any registered format (PNG, JPEG, BMP, TIFF) into
// tightly packed RGBA8 with its origin at (0, 0).
func DecodeImage(r io.Reader) (*image.RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return toRGBA(img), format, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// LoadImage decodes the image file at path.
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// FaceNames are the file stems of a cubemap directory, in face order.
var FaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

// LoadFaces reads the six faces of a cubemap from dir. Each face is the
// first of posx.png, posx.jpg, posx.bmp, ... that exists.
func LoadFaces(dir string) ([6]image.Image, error) {
	var faces [6]image.Image
	for i, stem := range FaceNames {
		path, err := findFace(dir, stem)
		if err != nil {
			return faces, err
		}
		img, err := LoadImage(path)
		if err != nil {
			return faces, err
		}
		faces[i] = img
	}
	return faces, nil
}

func findFace(dir, stem string) (string, error) {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"} {
		p := filepath.Join(dir, stem+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("cubemap %q: face %s not found", dir, stem)
}
