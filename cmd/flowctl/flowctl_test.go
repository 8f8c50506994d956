package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/sahayak-backend/internal/platform/media"
)

func TestWriteDataURI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	data := []byte{0x89, 'P', 'N', 'G'}
	if err := writeDataURI(path, media.DataURI("image/png", data)); err != nil {
		t.Fatalf("writeDataURI: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("got %v", got)
	}

	placeholder := filepath.Join(dir, "placeholder.png")
	if err := writeDataURI(placeholder, "https://placehold.co/512x288.png"); err != nil {
		t.Fatalf("placeholder: %v", err)
	}
	if _, err := os.Stat(placeholder); !os.IsNotExist(err) {
		t.Fatalf("placeholder URL must not create a file")
	}
}

func TestImageMIME(t *testing.T) {
	cases := map[string]string{"page.PNG": "image/png", "page.webp": "image/webp", "page.jpg": "image/jpeg", "page": "image/jpeg"}
	for in, want := range cases {
		if got := imageMIME(in); got != want {
			t.Fatalf("%s: got %s want %s", in, got, want)
		}
	}
}
