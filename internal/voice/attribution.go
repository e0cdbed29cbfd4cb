package voice

// Speaker identifies who produced a transcript line.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Attributor classifies transcript lines by source audio track: a line
// whose track id matches one of the local participant's published
// tracks is the user's; everything else is the assistant's.
type Attributor struct {
	localTracks map[string]struct{}
}

// NewAttributor creates an empty Attributor.
func NewAttributor() *Attributor {
	return &Attributor{localTracks: make(map[string]struct{})}
}

// AddLocalTrack registers a locally published audio track id.
func (a *Attributor) AddLocalTrack(trackID string) {
	a.localTracks[trackID] = struct{}{}
}

// Attribute classifies the given source track id.
func (a *Attributor) Attribute(trackID string) Speaker {
	if _, ok := a.localTracks[trackID]; ok {
		return SpeakerUser
	}
	return SpeakerAssistant
}
