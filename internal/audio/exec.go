package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

// candidate players, tried in order. Each must accept a file path as
// its final argument and exit when playback ends.
var candidates = [][]string{
	{"afplay"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpv", "--no-video", "--really-quiet"},
	{"aplay", "-q"},
}

// startedThreshold: a player process alive this long is considered to
// have started playing; later failures are spurious and suppressed.
const startedThreshold = 300 * time.Millisecond

// ExecPlayer plays audio by writing it to a temp file and handing it
// to the first available system player.
type ExecPlayer struct {
	argv []string
}

var _ Player = (*ExecPlayer)(nil)

// NewExecPlayer locates a usable system player on PATH.
func NewExecPlayer() (*ExecPlayer, error) {
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return &ExecPlayer{argv: c}, nil
		}
	}
	return nil, fmt.Errorf("no audio player found on PATH (tried afplay, ffplay, mpv, aplay)")
}

func (p *ExecPlayer) Start(ctx context.Context, audio []byte) (Playback, error) {
	f, err := os.CreateTemp("", "lingua-tts-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("write audio: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(audio); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write audio: %w", err)
	}
	_ = f.Close()

	args := append(append([]string{}, p.argv[1:]...), path)
	cmd := exec.CommandContext(ctx, p.argv[0], args...)
	start := time.Now()
	if err := cmd.Start(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("start player: %w", err)
	}

	pb := &execPlayback{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		defer close(pb.done)
		defer func() { _ = os.Remove(path) }()

		err := cmd.Wait()
		if err != nil && time.Since(start) < startedThreshold && !pb.stopped() {
			pb.err = err
		}
	}()
	return pb, nil
}

type execPlayback struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error

	mu      sync.Mutex
	stopFlg bool
}

func (p *execPlayback) Done() <-chan struct{} { return p.done }

func (p *execPlayback) Err() error { return p.err }

func (p *execPlayback) Stop() {
	p.mu.Lock()
	p.stopFlg = true
	p.mu.Unlock()

	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
}

func (p *execPlayback) stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopFlg
}
