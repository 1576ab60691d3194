package camera

import (
	"bytes"
	"fmt"
	"image"

	"github.com/ALPLab/sensorview-gateway/pkg/osi"
	"github.com/disintegration/imaging"
)

// Converter converts encoded simulator frames into the raw byte layout
// declared by a camera view configuration. The layout is not self
// describing; consumers read it back from the configuration carried next
// to the image data.
type Converter struct {
	width  int
	height int
	format osi.ChannelFormat
}

func NewConverter(cfg *osi.CameraSensorViewConfiguration) (*Converter, error) {
	if cfg.NumberOfPixelsHorizontal == 0 || cfg.NumberOfPixelsVertical == 0 {
		return nil, fmt.Errorf("invalid camera resolution %dx%d", cfg.NumberOfPixelsHorizontal, cfg.NumberOfPixelsVertical)
	}
	switch cfg.ChannelFormat {
	case osi.ChannelFormatMono8, osi.ChannelFormatRGB8, osi.ChannelFormatBGR8:
	default:
		return nil, fmt.Errorf("unsupported channel format %d", cfg.ChannelFormat)
	}
	return &Converter{
		width:  int(cfg.NumberOfPixelsHorizontal),
		height: int(cfg.NumberOfPixelsVertical),
		format: cfg.ChannelFormat,
	}, nil
}

// Convert decodes one encoded frame (jpeg or png), scales it to the
// configured resolution and emits the pixels row-major, top row first, in
// the configured channel format.
func (c *Converter) Convert(frame []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("unable to decode simulator frame: %v", err)
	}
	resized := imaging.Resize(img, c.width, c.height, imaging.Lanczos)
	if c.format == osi.ChannelFormatMono8 {
		resized = imaging.Grayscale(resized)
	}
	return c.layout(resized), nil
}

func (c *Converter) layout(img *image.NRGBA) []byte {
	bytesPerPixel := 3
	if c.format == osi.ChannelFormatMono8 {
		bytesPerPixel = 1
	}
	out := make([]byte, 0, c.width*c.height*bytesPerPixel)
	for y := 0; y < c.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+c.width*4]
		for x := 0; x < c.width; x++ {
			r := row[x*4]
			g := row[x*4+1]
			b := row[x*4+2]
			switch c.format {
			case osi.ChannelFormatMono8:
				// after Grayscale all channels are equal
				out = append(out, r)
			case osi.ChannelFormatRGB8:
				out = append(out, r, g, b)
			case osi.ChannelFormatBGR8:
				out = append(out, b, g, r)
			}
		}
	}
	return out
}
