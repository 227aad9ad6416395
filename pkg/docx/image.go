package docx

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strconv"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Sentinel errors for image handling.
var (
	// ErrUnsupportedImage indicates the data is not in a recognised image format.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrImageDecode indicates the data looked like an image but could not be decoded.
	ErrImageDecode = errors.New("image decode failed")
)

// firstImageRelID is the relationship number of the first image; styles and
// numbering take the ones before it.
const firstImageRelID = 3

// imageFormat describes how a decoded format is stored in the package.
type imageFormat struct {
	ext         string
	contentType string
}

//nolint:gochecknoglobals // Read-only lookup table.
var imageFormats = map[string]imageFormat{
	"png":  {"png", "image/png"},
	"jpeg": {"jpeg", "image/jpeg"},
	"gif":  {"gif", "image/gif"},
	"bmp":  {"bmp", "image/bmp"},
	"tiff": {"tiff", "image/tiff"},
}

// Image is a media part embedded in the package.
type Image struct {
	// Name is the file name under word/media.
	Name string

	// ContentType is the MIME type of Data.
	ContentType string

	// Data is the stored image bytes.
	Data []byte

	// Width and Height are the pixel dimensions.
	Width  int
	Height int

	relID string
	ext   string
}

// HeightFor returns the display height in EMU for the given display width.
func (img *Image) HeightFor(widthEMU int64) int64 {
	if img.Width <= 0 {
		return widthEMU
	}
	return widthEMU * int64(img.Height) / int64(img.Width)
}

// AddImage probes data and registers it as a media part. Identical data is
// stored once. WebP images are transcoded to PNG since Word cannot show them.
func (d *Document) AddImage(data []byte) (*Image, error) {
	sum := sha256.Sum256(data)
	if img, ok := d.imageByID[sum]; ok {
		return img, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedImage
		}
		return nil, fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrImageDecode)
	}

	if format == "webp" {
		data, err = transcodeWebP(data)
		if err != nil {
			return nil, err
		}
		format = "png"
	}

	imgFmt, ok := imageFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}

	seq := len(d.images) + 1
	img := &Image{
		Name:        "image" + strconv.Itoa(seq) + "." + imgFmt.ext,
		ContentType: imgFmt.contentType,
		Data:        data,
		Width:       cfg.Width,
		Height:      cfg.Height,
		relID:       "rId" + strconv.Itoa(firstImageRelID+len(d.images)),
		ext:         imgFmt.ext,
	}
	d.images = append(d.images, img)
	d.imageByID[sum] = img

	return img, nil
}

// transcodeWebP re-encodes WebP data as PNG.
func transcodeWebP(data []byte) ([]byte, error) {
	src, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageDecode, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	return buf.Bytes(), nil
}
