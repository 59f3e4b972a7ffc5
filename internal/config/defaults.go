package config

// OCR providers
const (
	ProviderTesseract = "tesseract"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// DefaultPath is the config file read when --config is not given
const DefaultPath = "argus.yaml"

var defaultModels = map[string]string{
	ProviderOllama: "mistral-small3.2:24b",
	ProviderOpenAI: "gpt-4o",
	ProviderGemini: "gemini-1.5-flash",
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		OutputDir:     "Output",
		DebugLogDir:   "extracted_text",
		SaveDebugLogs: true,
		StrongIndicators: []string{
			"CERTIFICATE OF AUTHENTICITY",
			"THIS DOCUMENT CERTIFIES",
			"WAS USED IN THE PRODUCTION",
			"PRODUCTION OF THE ABOVE",
		},
		WeakIndicators: []string{
			"PROPABILIA",
			"MEMORABILIA",
			"AUTHORIZED SIGNATURE",
			"MOVIE & TV",
			"OFFICIAL PROP",
		},
		WeakThreshold: 3,
		ForceUppercase: []string{
			"GCPD", "CIA", "FBI", "AKA", "USA", "UN", "SSD", "DHD", "NASA",
		},
		SimilarityThreshold: 0.80,
		OCR: OCR{
			Provider:      ProviderTesseract,
			MinConfidence: 0.6,
			Languages:     []string{"eng"},
		},
	}
}
