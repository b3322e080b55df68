package assets

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DecodeImage decodes an encoded image into CPU memory. It does not need a
// GL context and is safe to call from worker goroutines.
func DecodeImage(data []byte, fileType string) (*rl.Image, error) {
	img := rl.LoadImageFromMemory(fileType, data, int32(len(data)))
	if img == nil || img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("decode %s image", fileType)
	}
	return img, nil
}

// UploadTexture copies a decoded image to the GPU.
func UploadTexture(img *rl.Image) rl.Texture2D {
	tex := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}
