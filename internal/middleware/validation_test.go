package middleware

import (
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Breaking news", "Breaking news", false},
		{"empty allowed", "", "", false},
		{"trims whitespace", "  headline  ", "headline", false},
		{"exactly 512", strings.Repeat("a", 512), strings.Repeat("a", 512), false},
		{"too long", strings.Repeat("a", 513), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateTitle(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "article body", "article body", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"exactly 50000", strings.Repeat("a", 50000), strings.Repeat("a", 50000), false},
		{"too long", strings.Repeat("a", 50001), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateText(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateFeedback(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"correct", "correct", "correct", false},
		{"incorrect", "incorrect", "incorrect", false},
		{"uppercase normalized", "CORRECT", "correct", false},
		{"trims whitespace", " incorrect ", "incorrect", false},
		{"empty", "", "", true},
		{"unknown value", "maybe", "", true},
		{"partial match", "correctly", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateFeedback(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		if errMsg := ValidateRating(rating); errMsg != "" {
			t.Errorf("rating %d should be valid: %s", rating, errMsg)
		}
	}
	for _, rating := range []int{0, -1, 6, 100} {
		if errMsg := ValidateRating(rating); errMsg == "" {
			t.Errorf("rating %d should be rejected", rating)
		}
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"empty uses default", "", 0, false},
		{"valid", "25", 25, false},
		{"trims whitespace", " 10 ", 10, false},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"not a number", "abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateLimit(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
