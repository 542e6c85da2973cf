package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	// Fatal: reported once at startup, before any generation begins.
	ReasonConfig ReasonCode = "config"

	ReasonLLMGenerate  ReasonCode = "llm_generate"
	ReasonLLMParse     ReasonCode = "llm_parse"
	ReasonLLMRateLimit ReasonCode = "llm_rate_limit"

	ReasonTTSSynthesize ReasonCode = "tts_synthesize"
	ReasonTTSRateLimit  ReasonCode = "tts_rate_limit"

	ReasonValidation        ReasonCode = "validation"
	ReasonAttemptsExhausted ReasonCode = "attempts_exhausted"

	ReasonCorpusWrite ReasonCode = "corpus_write"
)

// Recoverable reports whether a reason aborts only the current conversation
// attempt. Everything except configuration errors is recoverable; a batch run
// never dies because one conversation failed.
func Recoverable(reason ReasonCode) bool {
	return reason != ReasonConfig
}
