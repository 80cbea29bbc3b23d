package lexbridge

import "strings"

// DetectionConfidence is the fixed confidence reported by DetectLanguage.
// Marker words are a weak signal, so this is a ceiling, not a measurement.
const DetectionConfidence = 0.7

// Detection is a best-guess source language.
type Detection struct {
	Language   string  `json:"detectedLanguage"`
	Confidence float64 `json:"confidence"`
}

// Detector guesses the language of free text.
type Detector interface {
	Detect(text string) Detection
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(text string) Detection

// Detect implements Detector.
func (f DetectorFunc) Detect(text string) Detection {
	return f(text)
}

type markerSet struct {
	language string
	words    []string
}

// Checked in order; the first language with any marker present wins.
// Markers match as substrings, so short markers like "ee" are broad.
var detectionMarkers = []markerSet{
	{"twi", []string{"akwaaba", "medaase", "aane", "daabi", "ɛyɛ", "wo ho te sen"}},
	{"yoruba", []string{"kaabo", "e se", "beni", "rara", "bawo ni", "o dara"}},
	{"hausa", []string{"sannu", "na gode", "eh", "a'a", "yaya kake"}},
	{"igbo", []string{"ndewo", "dalu", "ee", "mba", "kedu ka i mere"}},
}

// DetectLanguage guesses the language of text from marker words, defaulting
// to the pivot language.
func DetectLanguage(text string) Detection {
	lower := strings.ToLower(text)
	for _, set := range detectionMarkers {
		for _, w := range set.words {
			if strings.Contains(lower, w) {
				return Detection{Language: set.language, Confidence: DetectionConfidence}
			}
		}
	}
	return Detection{Language: DefaultPivot, Confidence: DetectionConfidence}
}

var _ Detector = DetectorFunc(DetectLanguage)
