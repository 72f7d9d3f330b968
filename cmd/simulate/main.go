package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/config"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/engine"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/logging"
)

// simulate runs one match headless and prints the outcome. It shares the
// content file and engine with the server but never touches the database,
// so it doubles as a quick balance-testing tool.
func main() {
	configPath := flag.String("config", "kayfabe_config.json", "path to the content configuration file")
	seed := flag.Int64("seed", 0, "match seed (0 derives one from the clock)")
	name1 := flag.String("w1", "Bruiser", "first wrestler name")
	name2 := flag.String("w2", "Comet", "second wrestler name")
	arch1 := flag.String("a1", "brawler", "first wrestler archetype")
	arch2 := flag.String("a2", "highflyer", "second wrestler archetype")
	timeLimit := flag.Float64("time-limit", 0, "match time limit in seconds (0 uses the configured default)")
	showLog := flag.Bool("log", false, "print every match log entry")
	asJSON := flag.Bool("json", false, "print the final state as JSON")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal("Missing or invalid content configuration", err, logging.Fields{"path": *configPath})
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	tl := *timeLimit
	if tl <= 0 {
		tl = cfg.DefaultTimeLimit
	}

	loop, err := engine.NewMatchLoop(engine.MatchLoopConfig{
		Seed:      s,
		TimeLimit: tl,
		TickRate:  cfg.TickRate,
		Wrestler1: game.WrestlerInput{ID: "w1", Name: *name1, Archetype: *arch1},
		Wrestler2: game.WrestlerInput{ID: "w2", Name: *name2, Archetype: *arch2},
	}, cfg.Content())
	if err != nil {
		logging.Fatal("Failed to build match", err, nil)
	}
	final := loop.RunToEnd()

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(final); err != nil {
			logging.Fatal("Failed to encode final state", err, nil)
		}
		return
	}

	if *showLog {
		for _, e := range final.Log {
			fmt.Printf("%6d %8.2fs %-18s %s\n", e.Tick, e.Elapsed, e.Type, e.Detail)
		}
	}
	r := final.Result
	if r == nil {
		fmt.Println("match ended without a result")
		os.Exit(1)
	}
	winnerIdx := final.AgentIndex(r.WinnerID)
	fmt.Printf("seed %d: %s defeats %s by %s at %.1fs (%.2f stars, %d ticks)\n",
		s, final.Agents[winnerIdx].Name, final.Agents[game.Opponent(winnerIdx)].Name,
		r.Method, r.Duration, r.Rating, final.Tick)
}
