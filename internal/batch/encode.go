package batch

import (
	"image"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"primscene/internal/config"
)

// Ext returns the file extension for an output format.
func Ext(format string) string {
	if format == config.FormatTGA {
		return "tga"
	}
	return "webp"
}

// Encode writes img in the given format. Unknown formats fall back to WebP.
func Encode(w io.Writer, img image.Image, format string) error {
	if format == config.FormatTGA {
		return tga.Encode(w, img)
	}
	return nativewebp.Encode(w, img, nil)
}

// EncodeAnimation writes frames as a looping animated WebP.
func EncodeAnimation(w io.Writer, frames []image.Image, frameMs int) error {
	durations := make([]uint, len(frames))
	disposals := make([]uint, len(frames))
	for i := range frames {
		durations[i] = uint(frameMs)
		disposals[i] = 1
	}
	return nativewebp.EncodeAll(w, &nativewebp.Animation{
		Images:    frames,
		Durations: durations,
		Disposals: disposals,
	}, nil)
}
