// Command train drives the training loop described in spec.md §5: for
// every utterance in a corpus directory, it removes that utterance's
// previous alignment counts (if any), resamples parameters on a
// configurable schedule, rebuilds the WFSTs for the next iteration,
// and adds the utterance's freshly aligned counts. Progress is
// reported to an optional WebSocket dashboard.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hsryu/discretehmm/internal/audio"
	"github.com/hsryu/discretehmm/internal/config"
	"github.com/hsryu/discretehmm/internal/corpus"
	"github.com/hsryu/discretehmm/internal/hmm"
	"github.com/hsryu/discretehmm/internal/monitor"
	"github.com/hsryu/discretehmm/internal/rng"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.ListDevices {
		if err := audio.Init(); err != nil {
			log.Fatalf("audio: %v", err)
		}
		defer audio.Terminate()
		if err := audio.PrintDevices(); err != nil {
			log.Fatalf("audio: %v", err)
		}
		return
	}

	model, err := hmm.New(hmm.Config{
		CodebookSize:    cfg.CodebookSize,
		NumUnits:        cfg.NumUnits,
		NumUnitStates:   cfg.NumUnitStates,
		ObsPriorParam:   cfg.ObsPrior,
		TransPriorParam: cfg.TransPrior,
	}.WithDefaults(), rng.New(cfg.Seed))
	if err != nil {
		log.Fatalf("hmm: %v", err)
	}

	var rs *corpus.RSCodec
	if cfg.CorpusFEC {
		rs, err = corpus.NewRSCodec()
		if err != nil {
			log.Fatalf("fec: %v", err)
		}
	}
	reader, err := corpus.NewReader(cfg.CorpusDir, cfg.CodebookSize, rs)
	if err != nil {
		log.Fatalf("corpus: %v", err)
	}
	log.Printf("train: %d utterances indexed in %s", reader.Len(), cfg.CorpusDir)

	hub := monitor.NewHub()
	srv := monitor.NewServer(cfg.MonitorAddr, hub)
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("monitor: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		os.Exit(0)
	}()

	driver := NewDriver(model, ForcedAdvanceAligner{}, cfg.ResampleEvery, hub)

	if cfg.LiveFrames > 0 {
		if err := captureLiveUtterance(cfg.CodebookSize, cfg.LiveFrames, driver); err != nil {
			log.Fatalf("audio: %v", err)
		}
	}

	for {
		features, utteranceID, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("corpus: %v", err)
		}
		if err := driver.Step(utteranceID, features); err != nil {
			log.Fatalf("train: %v", err)
		}
	}

	log.Printf("train: done, %d iterations", driver.iteration)
}
