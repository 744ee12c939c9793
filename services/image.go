package services

import (
	"bytes"
	"fmt"
	"image"
	"path"
	"slices"
	"strings"
	// Registered decoders for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/gabriel-vasile/mimetype"
)

const invalidImageMessage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

// imageExtensions lists the filename extensions accepted for each decoded
// format. The first entry is used when the upload name has no extension.
var imageExtensions = map[string][]string{
	"jpeg": {"jpg", "jpeg", "jpe", "jfif"},
	"png":  {"png"},
	"gif":  {"gif"},
	"bmp":  {"bmp"},
	"tiff": {"tiff", "tif"},
	"webp": {"webp"},
}

// imageInfo describes an upload that decoded as an image
type imageInfo struct {
	Format      string
	Width       int
	Height      int
	ContentType string
	Extension   string
}

// inspectImage decodes the image header in data. ok is false when data is
// not an image in one of the registered formats.
func inspectImage(data []byte) (imageInfo, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return imageInfo{}, false
	}

	mtype := mimetype.Detect(data)
	return imageInfo{
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
	}, true
}

// imageExtension picks the storage extension for an upload. The extension of
// filename must name the decoded format; a filename without one takes the
// format's default.
func imageExtension(filename string, info imageInfo) (string, error) {
	allowed, ok := imageExtensions[info.Format]
	// The sniffed content type must agree with the decoder
	if !ok || !slices.Contains(allowed, strings.TrimPrefix(info.Extension, ".")) {
		return "", apperrors.FieldError("image", invalidImageMessage)
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return allowed[0], nil
	}
	if !slices.Contains(allowed, ext) {
		return "", apperrors.FieldError("image", fmt.Sprintf(
			"File extension \u201c%s\u201d is not allowed for a %s image. Allowed extensions are: %s.",
			ext, info.Format, strings.Join(allowed, ", ")))
	}
	return ext, nil
}
