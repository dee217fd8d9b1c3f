package service

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/repository"
)

// MaxLogoBytes bounds the decoded size of a custom logo
const MaxLogoBytes = 2 << 20

// Logo is a decoded image
type Logo struct {
	ContentType string
	Data        []byte
}

// BrandingService manages the custom logo
type BrandingService struct {
	prefs          *repository.PreferenceRepository
	placeholderURL string
}

// NewBrandingService creates a new branding service
func NewBrandingService(prefs *repository.PreferenceRepository, placeholderURL string) *BrandingService {
	return &BrandingService{prefs: prefs, placeholderURL: placeholderURL}
}

// PlaceholderURL is where clients go when the stored logo is unusable
func (s *BrandingService) PlaceholderURL() string {
	return s.placeholderURL
}

// Logo returns the custom logo. It returns (nil, nil) when none is set and
// an error when the stored value does not decode.
func (s *BrandingService) Logo() (*Logo, error) {
	uri, ok, err := s.prefs.Get(repository.PrefCustomLogo)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return parseDataURI(uri)
}

// SetLogo stores a data URI image as the custom logo
func (s *BrandingService) SetLogo(uri string) error {
	logo, err := parseDataURI(uri)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if len(logo.Data) > MaxLogoBytes {
		return fmt.Errorf("%w: logo larger than %d bytes", domain.ErrInvalidRequest, MaxLogoBytes)
	}
	return s.prefs.Set(repository.PrefCustomLogo, uri)
}

// ClearLogo restores the default logo
func (s *BrandingService) ClearLogo() error {
	return s.prefs.Clear(repository.PrefCustomLogo)
}

// parseDataURI decodes data:<mime>;base64,<payload> and checks it is an image
func parseDataURI(uri string) (*Logo, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, fmt.Errorf("data uri must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("unsupported type %q", mime)
	}
	// SVG sniffs as text; trust the declared type for it
	if mime != "image/svg+xml" && !strings.HasPrefix(sniffed, "image/") {
		return nil, fmt.Errorf("payload is not an image")
	}
	return &Logo{ContentType: mime, Data: data}, nil
}
