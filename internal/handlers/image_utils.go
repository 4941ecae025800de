package handlers

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	"avidoBack/internal/models"
)

const maxImageSide = 1500

var errImageTooLarge = errors.New(models.MsgCannotUploadImage)

// readImageFile buffers the uploaded file and rejects anything wider or
// taller than maxImageSide pixels.
func readImageFile(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.New("unsupported image format")
	}
	if cfg.Width > maxImageSide || cfg.Height > maxImageSide {
		return nil, "", errImageTooLarge
	}
	return data, format, nil
}

func contentTypeForFormat(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
