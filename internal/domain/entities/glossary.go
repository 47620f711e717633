package entities

// GlossaryEntry is one source to target string pair for a language pair.
type GlossaryEntry struct {
	SourceLang string
	TargetLang string
	Source     string
	Target     string
}
