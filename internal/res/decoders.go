package res

// Register a broad set of image decoders so image.Decode and
// image.DecodeConfig handle every raster format a document may reference.
import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)
