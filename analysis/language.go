package analysis

// LanguageDetector identifies the spoken language of a clip. The
// pipeline treats this as a pluggable collaborator; swap in a real
// model-backed implementation without touching the rest of the core.
type LanguageDetector interface {
	Detect(signal []float64, sampleRate int) string
}

// HeuristicDetector is the default detector. It returns a fixed
// language code; the service primarily analyzes Japanese speech.
// TODO: replace with a Whisper-backed detector once one is deployed.
type HeuristicDetector struct{}

func (d *HeuristicDetector) Detect(signal []float64, sampleRate int) string {
	return "ja"
}
