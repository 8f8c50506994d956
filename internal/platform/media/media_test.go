package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/png"
	"strings"
	"testing"
)

func TestDataURIRoundTrip(t *testing.T) {
	uri := DataURI("image/jpeg", []byte{0xff, 0xd8, 0xff})
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Fatalf("uri=%q", uri)
	}
	m, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI: %v", err)
	}
	if m.MIMEType != "image/jpeg" || !bytes.Equal(m.Data, []byte{0xff, 0xd8, 0xff}) {
		t.Fatalf("got %+v", m)
	}
}

func TestParseDataURIRejects(t *testing.T) {
	cases := []string{
		"",
		"https://example.com/page.png",
		"data:image/png;base64",
		"data:;base64,AAAA",
		"data:image/png,AAAA",
		"data:image/png;base64,@@@",
		"data:image/png;base64,",
	}
	for _, in := range cases {
		if _, err := ParseDataURI(in); !errors.Is(err, ErrInvalidDataURI) {
			t.Fatalf("ParseDataURI(%q) err=%v", in, err)
		}
	}
}

func TestPCMToWAVHeader(t *testing.T) {
	pcm := make([]byte, 480)
	wav := PCMToWAV(pcm, 1, 24000, 16)
	if len(wav) != wavHeaderSize+len(pcm) {
		t.Fatalf("len=%d", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[36:40]) != "data" {
		t.Fatalf("bad chunk ids")
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Fatalf("riff size=%d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 24000 {
		t.Fatalf("sample rate=%d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 48000 {
		t.Fatalf("byte rate=%d", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Fatalf("bits=%d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Fatalf("data size=%d", got)
	}
}

func TestWAVDataURI(t *testing.T) {
	uri := WAVDataURI([]byte{1, 2, 3, 4}, 1, 24000)
	m, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI: %v", err)
	}
	if m.MIMEType != "audio/wav" || len(m.Data) != wavHeaderSize+4 {
		t.Fatalf("got mime=%s len=%d", m.MIMEType, len(m.Data))
	}
}

func TestRenderedPlaceholderIsPNG(t *testing.T) {
	p := NewRenderedPlaceholder("Illustration unavailable")
	uri := p.ImageURL()
	m, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(m.Data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != placeholderWidth || b.Dy() != placeholderHeight {
		t.Fatalf("bounds=%v", b)
	}
	if p.ImageURL() != uri {
		t.Fatalf("placeholder should be rendered once")
	}
}

func TestURLPlaceholder(t *testing.T) {
	if got := URLPlaceholder("https://placehold.co/512x288.png").ImageURL(); got != "https://placehold.co/512x288.png" {
		t.Fatalf("got %q", got)
	}
}
