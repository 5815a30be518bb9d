package middleware

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Input validation and sanitization utilities

// ValidateItemURL checks that an analysis item points at an absolute http(s) URL.
// The URL is handed to the inference provider, never fetched by this service.
func ValidateItemURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("image_url cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image_url format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid image_url scheme: %q (allowed: http, https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("image_url must be absolute")
	}
	return nil
}

// ValidateFileName rejects names that carry a directory part or control characters.
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}
	for _, r := range name {
		if r < 32 {
			return fmt.Errorf("invalid characters in file name")
		}
	}
	return nil
}

// StripNUL removes NUL bytes and leaves everything else untouched.
func StripNUL(input string) string {
	return strings.ReplaceAll(input, "\x00", "")
}
