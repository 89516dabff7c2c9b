package main

import (
	"fmt"

	"github.com/hsryu/discretehmm/internal/audio"
)

// captureLiveUtterance records n frames from the default input device,
// quantizes each one against a placeholder one-centroid-per-symbol
// codebook, and feeds the resulting feature sequence through driver as
// one extra utterance. This exercises the audio.Capture/Quantizer path
// end to end; a real deployment would train the codebook offline
// (audio.FitQuantizer) rather than use these placeholder centroids.
func captureLiveUtterance(codebookSize, frames int, driver *Driver) error {
	if err := audio.Init(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer audio.Terminate()

	capture := audio.NewCapture()
	if err := capture.Open(); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer capture.Close()
	if err := capture.Start(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer capture.Stop()

	centroids := make([][]float64, codebookSize)
	for i := range centroids {
		centroids[i] = []float64{float64(i)}
	}
	quantizer, err := audio.NewQuantizer(centroids)
	if err != nil {
		return fmt.Errorf("quantizer: %w", err)
	}

	features, err := capture.Symbols(quantizer, frames)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return driver.Step("live", features)
}
