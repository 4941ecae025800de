package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Category 1", "category-1"},
		{"Electronics & Gadgets", "electronics-gadgets"},
		{"Детские товары", "detskie-tovary"},
		{"  Объявления -- 2024  ", "obyavleniya-2024"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewRegistrationToken(t *testing.T) {
	token := NewRegistrationToken()
	if len(token) != registrationTokenLength {
		t.Fatalf("expected %d characters, got %d", registrationTokenLength, len(token))
	}
	if token == NewRegistrationToken() && token == NewRegistrationToken() {
		t.Fatal("tokens are not random")
	}
}
