package main

import "flag"
import "os"
import "runtime"

import "github.com/neurlang/nlu/datasets/intents"
import "github.com/neurlang/nlu/engine"
import "github.com/neurlang/nlu/logger"

// run loads the dataset, trains and persists. Nothing is written unless training succeeds.
func run(dataset, dstmodel string, config engine.Config) error {
	d, err := intents.LoadFile(dataset)
	if err != nil {
		return err
	}

	nlu := engine.New(config)
	if err := nlu.Fit(d); err != nil {
		return err
	}

	return nlu.Persist(dstmodel)
}

func main() {
	dataset := flag.String("dataset", "dataset.json", "training dataset, snips json format")
	dstmodel := flag.String("dstmodel", "../model", "model directory to write, replaced if it exists")
	heads := flag.Int("heads", 3, "hashtron heads per voting network")
	premodulo := flag.Uint("premodulo", 30011, "smallest premodulo prime of the heads")
	threads := flag.Int("threads", runtime.NumCPU(), "training threads")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Bool("pgo", false, "write a cpu profile to default.pgo")
	flag.Parse()

	if err := logger.Initialize(false, *verbose); err != nil {
		println(err.Error())
		os.Exit(1)
	}

	err := run(*dataset, *dstmodel, engine.Config{
		Heads:          *heads,
		PremoduloFloor: uint32(*premodulo),
		Threads:        *threads,
	})
	stopProfile()
	if err != nil {
		logger.Logger.Errorw("Training failed", "error", err)
		logger.Cleanup()
		os.Exit(1)
	}
	logger.Cleanup()
}
