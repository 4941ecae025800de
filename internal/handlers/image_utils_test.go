package handlers

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"testing"
)

func multipartImageRequest(t *testing.T, width, height int) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("images", "photo.png")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if err := png.Encode(part, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}
	return req.MultipartForm.File["images"][0]
}

func TestReadImageFileAcceptsSmallImage(t *testing.T) {
	header := multipartImageRequest(t, 800, 600)

	data, format, err := readImageFile(header)
	if err != nil {
		t.Fatalf("readImageFile returned error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected image bytes")
	}
	if format != "png" {
		t.Errorf("expected png format, got %q", format)
	}
}

func TestReadImageFileRejectsOversizedImage(t *testing.T) {
	header := multipartImageRequest(t, 1501, 100)

	if _, _, err := readImageFile(header); !errors.Is(err, errImageTooLarge) {
		t.Fatalf("expected errImageTooLarge, got %v", err)
	}
}

func TestReadImageFileBoundaryIsAllowed(t *testing.T) {
	header := multipartImageRequest(t, 1500, 1500)

	if _, _, err := readImageFile(header); err != nil {
		t.Fatalf("1500x1500 must be accepted, got %v", err)
	}
}

func TestReadImageFileRejectsGarbage(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("images", "not_an_image.txt")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write([]byte("plain text")); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}

	if _, _, err := readImageFile(req.MultipartForm.File["images"][0]); err == nil {
		t.Fatal("expected an error for a non-image payload")
	}
}
