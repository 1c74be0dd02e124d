package main

import (
	"flag"
	"log"
	"runtime"
	"time"

	segtremig "github.com/coalmintz/segtremig"
)

func main() {
	configPath := flag.String("config", "", "path to a coalescent TOML config file")
	numCPUPtr := flag.Int("threads", runtime.NumCPU(), "number of CPU threads")
	loggerType := flag.String("logger", "csv", "result logger type (csv|sqlite)")
	seedNum := flag.Int64("seed", 0, "random seed, 0 uses the config's seed, or the wall clock if that is also 0")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("-config is required")
	}

	runtime.GOMAXPROCS(*numCPUPtr)

	conf, err := segtremig.LoadCoalescentConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}

	format := conf.LogFormat
	if *loggerType != "csv" {
		format = *loggerType
	}

	var logger segtremig.ResultLogger
	switch format {
	case "sqlite":
		logger = segtremig.NewSQLiteResultLogger(conf.LogPath, 1)
	case "csv", "":
		logger = segtremig.NewCSVResultLogger(conf.LogPath, 1)
	default:
		log.Fatalf("%s is not a valid logger type (csv|sqlite)", format)
	}
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	params, err := conf.ToParams()
	if err != nil {
		log.Fatal(err)
	}

	seed := *seedNum
	if seed == 0 {
		seed = conf.Seed
	}
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}

	start := time.Now()
	results, err := segtremig.RunReplicates(params, conf.NumReplicates, *numCPUPtr, seed, logger)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("completed %d replicates in %s.", len(results), time.Since(start))
}
