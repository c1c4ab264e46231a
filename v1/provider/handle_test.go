package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/embedgate/embedgate/v1/config"
)

func testDescriptor() *config.ClientDescriptor {
	return &config.ClientDescriptor{
		Provider:    config.ProviderOllama,
		Model:       "nomic-embed-text",
		Performance: config.DefaultPerformance(),
	}
}

func TestNew_RequiresModel(t *testing.T) {
	desc := testDescriptor()
	desc.Model = ""
	if _, err := New(desc); err == nil {
		t.Error("expected error for empty model")
	}
}

func TestNew_KnownProvidersHaveEndpoints(t *testing.T) {
	for _, p := range config.Providers {
		if defaultBaseURL[p] == "" {
			t.Errorf("provider %s has no default endpoint", p)
		}
	}
}

func TestDescribe_WithoutVisionModel(t *testing.T) {
	h, err := New(testDescriptor())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = h.Describe(context.Background(), []byte{0xff, 0xd8, 0xff}, "")
	if !errors.Is(err, ErrVisionModelNotSet) {
		t.Errorf("expected ErrVisionModelNotSet, got %v", err)
	}
}

func TestImageDataURL(t *testing.T) {
	// PNG magic bytes sniff as image/png.
	png := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	url := imageDataURL(png)
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("expected png data URL, got %s", url)
	}

	// Non-image payloads fall back to jpeg rather than producing a
	// text/plain data URL the vision endpoint would reject.
	url = imageDataURL([]byte("not an image"))
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Errorf("expected jpeg fallback, got %s", url)
	}
}
