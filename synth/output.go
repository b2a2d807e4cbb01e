package synth

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

const outputBuffer = 30 * time.Millisecond

// Output plays an Engine on the default audio device
type Output struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewOutput opens the audio device and starts pulling samples from e
func NewOutput(e *Engine) (*Output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   e.SampleRate(),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   outputBuffer,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(e)
	player.Play()
	return &Output{ctx: ctx, player: player}, nil
}

// Close stops playback. The oto context lives until process exit.
func (o *Output) Close() error {
	o.player.Pause()
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
