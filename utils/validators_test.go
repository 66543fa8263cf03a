// File: /utils/validators_test.go
package utils

import (
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"ann@example.com", "a.b+c@sub.domain.org"}
	invalid := []string{"", "not-an-email", "@example.com", "ann@", "ann@host"}

	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}

func TestCoordinateRanges(t *testing.T) {
	if !IsValidLatitude(1.3521) || !IsValidLongitude(103.8198) {
		t.Error("Expected Singapore coordinates to be valid")
	}
	if IsValidLatitude(91) || IsValidLongitude(-181) {
		t.Error("Expected out-of-range coordinates to be rejected")
	}
}
