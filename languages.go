package lexbridge

import (
	"sort"
	"strings"
)

// Language describes one language identifier known to the registry.
// Identifiers are open-ended: resolving between unknown languages is allowed,
// the registry only supplies display names and provider codes.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	Region     string `json:"region"`
	Family     string `json:"family"`
	// ISO is the code sent to external translation providers.
	ISO string `json:"iso,omitempty"`
}

// Languages lists the languages with display metadata.
var Languages = []Language{
	// West Africa
	{Code: "twi", Name: "Twi (Akan)", NativeName: "Twi", Region: "Ghana", Family: "Niger-Congo", ISO: "tw"},
	{Code: "akan", Name: "Akan", NativeName: "Akan", Region: "Ghana", Family: "Niger-Congo", ISO: "ak"},
	{Code: "yoruba", Name: "Yoruba", NativeName: "Yorùbá", Region: "Nigeria", Family: "Niger-Congo", ISO: "yo"},
	{Code: "hausa", Name: "Hausa", NativeName: "Harshen Hausa", Region: "Nigeria/Niger", Family: "Afro-Asiatic", ISO: "ha"},
	{Code: "igbo", Name: "Igbo", NativeName: "Asụsụ Igbo", Region: "Nigeria", Family: "Niger-Congo", ISO: "ig"},
	{Code: "fulani", Name: "Fulani (Fulfulde)", NativeName: "Fulfulde", Region: "West Africa", Family: "Niger-Congo", ISO: "ff"},
	{Code: "wolof", Name: "Wolof", NativeName: "Wolof", Region: "Senegal", Family: "Niger-Congo", ISO: "wo"},
	{Code: "ewe", Name: "Ewe", NativeName: "Eʋegbe", Region: "Ghana/Togo", Family: "Niger-Congo", ISO: "ee"},
	{Code: "edo", Name: "Edo (Bini)", NativeName: "Ẹ̀dó", Region: "Nigeria", Family: "Niger-Congo", ISO: "bin"},
	{Code: "efik", Name: "Efik", NativeName: "Efik", Region: "Nigeria", Family: "Niger-Congo", ISO: "efi"},
	{Code: "tiv", Name: "Tiv", NativeName: "Tiv", Region: "Nigeria", Family: "Niger-Congo", ISO: "tiv"},
	{Code: "kanuri", Name: "Kanuri", NativeName: "Kanuri", Region: "Nigeria", Family: "Nilo-Saharan", ISO: "kr"},
	{Code: "bambara", Name: "Bambara", NativeName: "Bamanankan", Region: "Mali", Family: "Niger-Congo", ISO: "bm"},

	// East Africa
	{Code: "swahili", Name: "Swahili", NativeName: "Kiswahili", Region: "East Africa", Family: "Niger-Congo", ISO: "sw"},
	{Code: "amharic", Name: "Amharic", NativeName: "አማርኛ", Region: "Ethiopia", Family: "Afro-Asiatic", ISO: "am"},
	{Code: "oromo", Name: "Oromo", NativeName: "Afaan Oromoo", Region: "Ethiopia", Family: "Afro-Asiatic", ISO: "om"},
	{Code: "tigrinya", Name: "Tigrinya", NativeName: "ትግርኛ", Region: "Ethiopia/Eritrea", Family: "Afro-Asiatic", ISO: "ti"},
	{Code: "luganda", Name: "Luganda", NativeName: "Luganda", Region: "Uganda", Family: "Niger-Congo", ISO: "lg"},
	{Code: "kinyarwanda", Name: "Kinyarwanda", NativeName: "Ikinyarwanda", Region: "Rwanda", Family: "Niger-Congo", ISO: "rw"},
	{Code: "somali", Name: "Somali", NativeName: "Af-Soomaali", Region: "Somalia", Family: "Afro-Asiatic", ISO: "so"},

	// Southern Africa
	{Code: "zulu", Name: "Zulu", NativeName: "isiZulu", Region: "South Africa", Family: "Niger-Congo", ISO: "zu"},
	{Code: "xhosa", Name: "Xhosa", NativeName: "isiXhosa", Region: "South Africa", Family: "Niger-Congo", ISO: "xh"},
	{Code: "afrikaans", Name: "Afrikaans", NativeName: "Afrikaans", Region: "South Africa", Family: "Indo-European", ISO: "af"},
	{Code: "sotho", Name: "Sotho", NativeName: "Sesotho", Region: "South Africa", Family: "Niger-Congo", ISO: "st"},
	{Code: "shona", Name: "Shona", NativeName: "chiShona", Region: "Zimbabwe", Family: "Niger-Congo", ISO: "sn"},
	{Code: "chewa", Name: "Chewa", NativeName: "Chichewa", Region: "Malawi", Family: "Niger-Congo", ISO: "ny"},

	// Central and North Africa
	{Code: "lingala", Name: "Lingala", NativeName: "Lingála", Region: "Congo", Family: "Niger-Congo", ISO: "ln"},
	{Code: "arabic", Name: "Arabic", NativeName: "العربية", Region: "North Africa", Family: "Afro-Asiatic", ISO: "ar"},

	// Global
	{Code: "english", Name: "English", NativeName: "English", Region: "Global", Family: "Indo-European", ISO: "en"},
	{Code: "french", Name: "French", NativeName: "Français", Region: "Global", Family: "Indo-European", ISO: "fr"},
	{Code: "spanish", Name: "Spanish", NativeName: "Español", Region: "Global", Family: "Indo-European", ISO: "es"},
	{Code: "portuguese", Name: "Portuguese", NativeName: "Português", Region: "Global", Family: "Indo-European", ISO: "pt"},
	{Code: "mandarin", Name: "Mandarin", NativeName: "中文", Region: "Global", Family: "Sino-Tibetan", ISO: "zh"},
	{Code: "hindi", Name: "Hindi", NativeName: "हिन्दी", Region: "Global", Family: "Indo-European", ISO: "hi"},
	{Code: "urdu", Name: "Urdu", NativeName: "اردو", Region: "Global", Family: "Indo-European", ISO: "ur"},
}

var languageIndex = func() map[string]int {
	idx := make(map[string]int, len(Languages))
	for i, l := range Languages {
		idx[l.Code] = i
	}
	return idx
}()

// LookupLanguage returns the registry entry for code. Matching is
// case-insensitive.
func LookupLanguage(code string) (Language, bool) {
	i, ok := languageIndex[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Language{}, false
	}
	return Languages[i], true
}

// ISOCode returns the provider-facing code for a language identifier.
// Falls back to the identifier itself if unknown.
func ISOCode(code string) string {
	if l, ok := LookupLanguage(code); ok && l.ISO != "" {
		return l.ISO
	}
	return code
}

// NameForISO returns the registry name for a provider-facing code, or the
// code itself if no language uses it.
func NameForISO(iso string) string {
	iso = strings.ToLower(strings.TrimSpace(iso))
	for _, l := range Languages {
		if l.ISO == iso {
			return l.Name
		}
	}
	return iso
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(code string) string {
	if l, ok := LookupLanguage(code); ok {
		return l.Name
	}
	return code
}

// LanguagesByRegion groups the registry by region. Languages within a region
// keep registry order; regions are sorted by name.
func LanguagesByRegion() ([]string, map[string][]Language) {
	groups := make(map[string][]Language)
	for _, l := range Languages {
		groups[l.Region] = append(groups[l.Region], l)
	}
	regions := make([]string, 0, len(groups))
	for r := range groups {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions, groups
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(code string) string {
	if RTLLanguages[strings.ToLower(strings.TrimSpace(code))] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(code string) bool {
	return GetDirection(code) == "rtl"
}
