// Package audio plays synthesized speech. Playback is delegated to a
// system player process; the Manager disciplines the app to at most
// one active playback at a time.
package audio

import "context"

// Playback is a single in-flight playback.
type Playback interface {
	// Done is closed when playback finishes, successfully or not.
	Done() <-chan struct{}

	// Err returns the playback error, if any. Valid after Done is
	// closed. Errors occurring after playback successfully started
	// are suppressed and never reported here.
	Err() error

	// Stop terminates the playback. Safe to call more than once.
	Stop()
}

// Player starts playbacks from raw audio bytes.
type Player interface {
	// Start begins playing audio and returns immediately. The returned
	// Playback tracks completion.
	Start(ctx context.Context, audio []byte) (Playback, error)
}
