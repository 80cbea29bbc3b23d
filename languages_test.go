package lexbridge

import "testing"

func TestGetLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"twi", "Twi (Akan)"},
		{"Swahili", "Swahili"}, // case-insensitive
		{"english", "English"},
		{"klingon", "klingon"}, // fallback
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			result := GetLanguageName(tt.code)
			if result != tt.expected {
				t.Errorf("GetLanguageName(%q) = %q, want %q", tt.code, result, tt.expected)
			}
		})
	}
}

func TestISOCode(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"english", "en"},
		{"twi", "tw"},
		{"edo", "bin"},
		{"swahili", "sw"},
		{"klingon", "klingon"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ISOCode(tt.code); got != tt.expected {
				t.Errorf("ISOCode(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestNameForISO(t *testing.T) {
	tests := map[string]string{
		"sw":  "Swahili",
		"EN":  "English",
		"bin": "Edo (Bini)",
		"xx":  "xx",
	}

	for iso, want := range tests {
		if got := NameForISO(iso); got != want {
			t.Errorf("NameForISO(%q) = %q, want %q", iso, got, want)
		}
	}
}

func TestGetDirection(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"arabic", "rtl"},
		{"urdu", "rtl"},
		{"Arabic", "rtl"},
		{"swahili", "ltr"},
		{"english", "ltr"},
		{"unknown", "ltr"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			result := GetDirection(tt.code)
			if result != tt.expected {
				t.Errorf("GetDirection(%q) = %q, want %q", tt.code, result, tt.expected)
			}
		})
	}
}

func TestIsRTL(t *testing.T) {
	if !IsRTL("arabic") {
		t.Error("arabic should be RTL")
	}
	if IsRTL("yoruba") {
		t.Error("yoruba should not be RTL")
	}
}

func TestLanguagesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, l := range Languages {
		if seen[l.Code] {
			t.Errorf("duplicate language code %q", l.Code)
		}
		seen[l.Code] = true
		if l.Name == "" {
			t.Errorf("language %q has no name", l.Code)
		}
	}
}

func TestLanguagesByRegion(t *testing.T) {
	regions, groups := LanguagesByRegion()
	if len(regions) == 0 {
		t.Fatal("expected at least one region")
	}
	for i := 1; i < len(regions); i++ {
		if regions[i-1] > regions[i] {
			t.Errorf("regions not sorted: %q before %q", regions[i-1], regions[i])
		}
	}

	total := 0
	for _, r := range regions {
		total += len(groups[r])
	}
	if total != len(Languages) {
		t.Errorf("grouped %d languages, want %d", total, len(Languages))
	}
}
