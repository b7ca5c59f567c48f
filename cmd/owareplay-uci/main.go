package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/hailam/owareplay/internal/book"
	"github.com/hailam/owareplay/internal/config"
	"github.com/hailam/owareplay/internal/engine"
	"github.com/hailam/owareplay/internal/tablebase"
	"github.com/hailam/owareplay/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	configPath = flag.String("config", "", "path to config.toml (default ~/.owareplay/config.toml)")
)

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := loadConfig()

	eng := engine.New()
	if err := eng.SetMoveTime(time.Duration(cfg.Engine.MoveTimeMS) * time.Millisecond); err != nil {
		log.Printf("[Main] move time %dms rejected: %v", cfg.Engine.MoveTimeMS, err)
	}
	eng.SetDepth(cfg.Engine.Depth)
	eng.SetContempt(cfg.Engine.Contempt)

	protocol := uci.New(eng, engine.NewTable(cfg.Engine.HashMB))
	defer protocol.Close()

	if cfg.Paths.Book != "" {
		b, err := book.Load(cfg.Paths.Book)
		if err != nil {
			log.Printf("[Main] book not loaded: %v", err)
		} else {
			protocol.SetBook(b)
			log.Printf("[Main] book loaded with %d positions", b.Len())
		}
	}

	if cfg.Paths.Leaves != "" {
		store, err := tablebase.Open(cfg.Paths.Leaves)
		if err != nil {
			log.Printf("[Main] tablebase not opened: %v", err)
		} else {
			protocol.SetLeaves(store)
		}
	}

	protocol.Run(os.Stdin)
}

// loadConfig reads the configuration file named by the flag or the
// default location; either way a broken file degrades to the defaults.
func loadConfig() config.File {
	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default()
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("[Main] config %s ignored: %v", path, err)
	}
	return cfg
}
