package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func multipartAdRequest(t *testing.T, values map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range values {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/ads/advertisements", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeFieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding error payload failed: %v", err)
	}
	return payload.Errors
}

func TestCreateAdvertisementRejectsMalformedNumericFields(t *testing.T) {
	handler := &AdvertisementHandler{}
	req := multipartAdRequest(t, map[string]string{
		"name":        "Bike",
		"description": "Barely used",
		"price":       "free",
		"category_id": "bikes",
		"city_id":     "",
	})
	rec := httptest.NewRecorder()

	handler.CreateAdvertisement(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	fields := decodeFieldErrors(t, rec)
	for _, field := range []string{"price", "category_id", "city_id"} {
		if fields[field] == "" {
			t.Errorf("expected a validation message for %q, got %v", field, fields)
		}
	}
	if fields["name"] != "" {
		t.Errorf("name was valid, got message %q", fields["name"])
	}
}

func TestCreateAdvertisementRequiresName(t *testing.T) {
	handler := &AdvertisementHandler{}
	req := multipartAdRequest(t, map[string]string{
		"name":        "",
		"price":       "100",
		"category_id": "1",
		"city_id":     "1",
	})
	rec := httptest.NewRecorder()

	handler.CreateAdvertisement(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if fields := decodeFieldErrors(t, rec); fields["name"] != "required" {
		t.Errorf("expected name required message, got %v", fields)
	}
}
