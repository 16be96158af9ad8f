package dedupe

import (
	"testing"
)

func TestNormalizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and lowers", "  Asha  ", "asha"},
		{"collapses internal runs", "Asha   R.\tKumar", "asha r. kumar"},
		{"strips control characters", "asha\x1fkumar", "ashakumar"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeString(tt.input); got != tt.want {
				t.Errorf("normalizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeChildID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12345.0", "12345"},
		{" 12345.0 ", "12345"},
		{"12345", "12345"},
		{"12345.05", "12345.05"},
		{"AB-9.0", "ab-9"},
	}

	for _, tt := range tests {
		if got := normalizeChildID(tt.input); got != tt.want {
			t.Errorf("normalizeChildID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"day first slash", "05/03/2024", "2024-03-05", true},
		{"day first dash", "05-03-2024", "2024-03-05", true},
		{"iso", "2024-03-05", "2024-03-05", true},
		{"iso with time dropped", "2024-03-05 14:30:00", "2024-03-05", true},
		{"month name", "05-Mar-2024", "2024-03-05", true},
		{"unpadded", "5/3/2024", "2024-03-05", true},
		{"excel serial", "45356", "2024-03-05", true},
		{"empty is not an error", "", "", true},
		{"garbage", "not a date", "", false},
		{"partial", "03/2024", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("normalizeDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("normalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
