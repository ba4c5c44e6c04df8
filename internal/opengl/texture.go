package opengl

import (
	"errors"
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

var errEmptyTexture = errors.New("texture has no pixel data")

// Texture is a 2D or cubemap texture object.
type Texture struct {
	id     uint32
	target uint32
}

func (t *Texture) Cubemap() bool { return t.target == gl.TEXTURE_CUBE_MAP }

func (t *Texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// NewTexture2D uploads img with mipmaps and repeat wrapping.
func NewTexture2D(img *image.RGBA) (*Texture, error) {
	if img == nil || len(img.Pix) == 0 {
		return nil, errEmptyTexture
	}
	b := img.Bounds()

	t := &Texture{target: gl.TEXTURE_2D}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// NewCubemap uploads six RGBA8 faces in +X,-X,+Y,-Y,+Z,-Z order.
func NewCubemap(width, height int, faces [6][]byte) (*Texture, error) {
	want := width * height * 4
	for i, f := range faces {
		if len(f) != want {
			return nil, fmt.Errorf("cubemap face %d: %d bytes, want %d", i, len(f), want)
		}
	}

	t := &Texture{target: gl.TEXTURE_CUBE_MAP}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
	for i, f := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(width), int32(height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t, nil
}
