package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Media is a decoded binary payload with its MIME type.
type Media struct {
	Data     []byte
	MIMEType string
}

var ErrInvalidDataURI = errors.New("invalid data URI")

// DataURI encodes data as data:<mime>;base64,<payload>.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func (m Media) DataURI() string { return DataURI(m.MIMEType, m.Data) }

// ParseDataURI accepts only base64 data URIs that carry a MIME type, which is the shape browsers
// produce for uploaded photos.
func ParseDataURI(s string) (Media, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return Media{}, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURI)
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return Media{}, fmt.Errorf("%w: missing payload", ErrInvalidDataURI)
	}
	header := s[len("data:"):comma]
	payload := s[comma+1:]

	params := strings.Split(header, ";")
	mimeType := strings.TrimSpace(params[0])
	if mimeType == "" || !strings.Contains(mimeType, "/") {
		return Media{}, fmt.Errorf("%w: missing MIME type", ErrInvalidDataURI)
	}
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	if !isBase64 {
		return Media{}, fmt.Errorf("%w: payload must be base64", ErrInvalidDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Media{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if len(data) == 0 {
		return Media{}, fmt.Errorf("%w: empty payload", ErrInvalidDataURI)
	}
	return Media{Data: data, MIMEType: strings.ToLower(mimeType)}, nil
}
