package analysis

// VoiceType is a voice classification label derived from mean pitch
type VoiceType string

const (
	VoiceSoprano      VoiceType = "soprano"
	VoiceMezzoSoprano VoiceType = "mezzo-soprano"
	VoiceContralto    VoiceType = "contralto"
	VoiceTenor        VoiceType = "tenor"
	VoiceBaritone     VoiceType = "baritone"
	VoiceBass         VoiceType = "bass"
	VoiceUnknown      VoiceType = "unknown"
)

// ClassifyVoiceType maps mean fundamental frequency to a voice-type
// label. 165 Hz splits the female and male branches; the boundary
// itself falls on the male side.
func ClassifyVoiceType(pitchMeanHz float64) VoiceType {
	if pitchMeanHz <= 0 {
		return VoiceUnknown
	}

	if pitchMeanHz > 165 {
		switch {
		case pitchMeanHz > 250:
			return VoiceSoprano
		case pitchMeanHz > 200:
			return VoiceMezzoSoprano
		default:
			return VoiceContralto
		}
	}

	switch {
	case pitchMeanHz > 140:
		return VoiceTenor
	case pitchMeanHz > 100:
		return VoiceBaritone
	default:
		return VoiceBass
	}
}
