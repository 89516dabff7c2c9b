// Package audio captures live microphone input and turns it into the
// discrete codebook symbols internal/hmm trains on, via a small
// nearest-centroid Quantizer. Lattice/transducer logic never lives
// here; this package's only job is producing a []int feature stream,
// the same shape internal/corpus.Reader produces from disk.
package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate   = 44100
	FramesPerBuf = 576 // one quantization window
	NumChannels  = 1
)

// Capture wraps a PortAudio input-only stream.
type Capture struct {
	stream   *portaudio.Stream
	inputBuf []float32
	mu       sync.Mutex
}

// Init initializes the PortAudio library. Must be called once before
// any Capture is opened.
func Init() error {
	return portaudio.Initialize()
}

// Terminate releases PortAudio resources.
func Terminate() error {
	return portaudio.Terminate()
}

// NewCapture creates a Capture with its own input buffer.
func NewCapture() *Capture {
	return &Capture{inputBuf: make([]float32, FramesPerBuf)}
}

// Open opens the default input stream.
func (c *Capture) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stream, err := portaudio.OpenDefaultStream(
		NumChannels,
		0,
		float64(SampleRate),
		FramesPerBuf,
		c.inputBuf,
	)
	if err != nil {
		return fmt.Errorf("audio: open input stream: %w", err)
	}
	c.stream = stream
	return nil
}

// Start starts the input stream.
func (c *Capture) Start() error {
	if c.stream == nil {
		return fmt.Errorf("audio: input stream not opened")
	}
	return c.stream.Start()
}

// ReadFrame blocks for one buffer of FramesPerBuf samples.
func (c *Capture) ReadFrame() ([]float32, error) {
	if c.stream == nil {
		return nil, fmt.Errorf("audio: input stream not opened")
	}
	if err := c.stream.Read(); err != nil {
		return nil, fmt.Errorf("audio: read: %w", err)
	}
	out := make([]float32, len(c.inputBuf))
	copy(out, c.inputBuf)
	return out, nil
}

// Stop stops the input stream.
func (c *Capture) Stop() error {
	if c.stream == nil {
		return nil
	}
	return c.stream.Stop()
}

// Close closes the input stream.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream == nil {
		return nil
	}
	err := c.stream.Close()
	c.stream = nil
	if err != nil {
		return fmt.Errorf("audio: close: %w", err)
	}
	return nil
}

// Symbols reads n frames from the stream and quantizes each one,
// returning the resulting feature sequence — exactly the shape
// internal/corpus.Reader produces from a file.
func (c *Capture) Symbols(q *Quantizer, n int) ([]int, error) {
	features := make([]int, n)
	for i := 0; i < n; i++ {
		frame, err := c.ReadFrame()
		if err != nil {
			return nil, err
		}
		features[i] = q.Quantize(frame)
	}
	return features, nil
}
