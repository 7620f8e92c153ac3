package middleware

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Input validation and sanitization utilities

// MaxPasswordLength bounds the work done per analyze request.
const MaxPasswordLength = 256

var (
	tenantRe  = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	sessionRe = regexp.MustCompile(`^[a-zA-Z0-9._:-]{1,128}$`)
)

// ValidatePassword checks size and encoding. Emptiness is left to the engine.
func ValidatePassword(password string) error {
	if !utf8.ValidString(password) {
		return fmt.Errorf("password must be valid UTF-8")
	}
	if n := utf8.RuneCountInString(password); n > MaxPasswordLength {
		return fmt.Errorf("password too long: %d characters (max %d)", n, MaxPasswordLength)
	}
	if strings.ContainsRune(password, '\x00') {
		return fmt.Errorf("password contains a null byte")
	}
	return nil
}

// ValidateGeneration checks the generate request bounds.
func ValidateGeneration(minScore, timeThresholdDays int) error {
	if minScore < 0 || minScore > 100 {
		return fmt.Errorf("min_score must be between 0 and 100")
	}
	if timeThresholdDays < 0 {
		return fmt.Errorf("time_threshold_days must not be negative")
	}
	return nil
}

// ValidateSessionID checks the X-Client-Session header value.
func ValidateSessionID(id string) error {
	if !sessionRe.MatchString(id) {
		return fmt.Errorf("invalid X-Client-Session (letters, digits, . _ : - only, max 128 chars)")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 && r != 127 {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}
	if !tenantRe.MatchString(tenant) {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// MaxPage keeps (page-1)*limit inside an int for any limit ValidateLimit allows.
const MaxPage = math.MaxInt / 100

// ParsePage reads a 1-based page number, defaulting to 1 and capped at MaxPage.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return MaxPage
	}
	if err != nil || n < 1 {
		return 1
	}
	return min(n, MaxPage)
}
