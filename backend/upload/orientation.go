package upload

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"vincit.fi/collector/common/logger"
)

const (
	noRotate  = 0
	rotate180 = 180
	left90    = 90
	right90   = 270

	noHorizontalFlip = false
	horizontalFlip   = true
)

// orientationToAngleAndFlip maps the EXIF orientation tag to a counter
// clockwise rotation and a horizontal flip applied after it.
func orientationToAngleAndFlip(orientation int) (float64, bool) {
	switch orientation {
	case 1:
		return noRotate, noHorizontalFlip
	case 2:
		return noRotate, horizontalFlip
	case 3:
		return rotate180, noHorizontalFlip
	case 4:
		return rotate180, horizontalFlip
	case 5:
		return right90, horizontalFlip
	case 6:
		return right90, noHorizontalFlip
	case 7:
		return left90, horizontalFlip
	case 8:
		return left90, noHorizontalFlip
	default:
		return noRotate, noHorizontalFlip
	}
}

// readOrientation returns 1 when the data has no readable orientation.
func readOrientation(data []byte) int {
	decoded, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Trace.Printf("No EXIF data: %s", err)
		return 1
	}
	tag, err := decoded.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func rotate(img image.Image, orientation int) image.Image {
	angle, flip := orientationToAngleAndFlip(orientation)
	if angle != noRotate {
		img = imaging.Rotate(img, angle, color.Black)
	}
	if flip {
		img = imaging.FlipH(img)
	}
	return img
}
