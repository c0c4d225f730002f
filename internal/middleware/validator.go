package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// MaxUploadBytes caps the accepted upload size.
const MaxUploadBytes = 16 << 20 // 16 MiB

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"txt":  true,
	"md":   true,
	"text": true,
}

// ValidateFilename checks the upload has a name and a supported extension.
func ValidateFilename(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return fmt.Errorf("no file selected")
	}
	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		// Extensionless files are treated as plain text downstream.
		return nil
	}
	ext := strings.ToLower(parts[len(parts)-1])
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type: %s (allowed: pdf, png, jpg, jpeg, txt)", ext)
	}
	return nil
}

// langPattern matches BCP-47-ish tags like "en", "pt", "zh-Hans".
var langPattern = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z]{2,8})?$`)

// ValidateTargetLang rejects malformed language tags before they reach the
// translation or speech services. Empty means "en".
func ValidateTargetLang(lang string) error {
	if lang == "" {
		return nil
	}
	if !langPattern.MatchString(lang) {
		return fmt.Errorf("invalid target language: %q", lang)
	}
	return nil
}
