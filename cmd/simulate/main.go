package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kr/pretty"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/dining-sim/internal/config"
	"github.com/iliyamo/dining-sim/internal/logger"
	"github.com/iliyamo/dining-sim/internal/report"
	"github.com/iliyamo/dining-sim/internal/service"
	"github.com/iliyamo/dining-sim/internal/sim"
	"github.com/iliyamo/dining-sim/internal/utils"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "run":
		runSimulation(os.Args[2:])
	case "hash-password":
		runHashPassword(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: simulate <run|hash-password> [...]")
}

func runSimulation(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	layout := fs.String("layout", os.Getenv("SIM_LAYOUT"), "YAML layout file, empty uses the built-in floor")
	duration := fs.Float64("duration", 0, "simulated time to cover, overrides the layout")
	step := fs.Float64("step", 0, "length of one tick, overrides the layout")
	seed := fs.Uint64("seed", 0, "random seed, overrides the layout")
	quiet := fs.Bool("quiet", false, "print only the summary")
	debug := fs.Bool("debug", false, "dump the resolved layout and the run")
	level := fs.String("log-level", "warn", "log level")
	_ = fs.Parse(args)

	config.LoadDotEnv()
	logg := logger.New(os.Stderr, *level, "simulate")

	cfg, err := config.LoadSimulationConfig(*layout)
	if err != nil {
		logg.Fatal("load layout", "path", *layout, "err", err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Duration = *duration
		case "step":
			cfg.TimeStep = *step
		case "seed":
			cfg.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		logg.Fatal("invalid layout", "err", err)
	}
	if *debug {
		fmt.Fprintf(os.Stderr, "%# v\n", pretty.Formatter(cfg))
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	var observe func(sim.TickReport)
	if !*quiet {
		observe = report.NewPrinter(out, len(cfg.Tables)).Tick
	}
	logg.Info("running", "tables", len(cfg.Tables), "duration", cfg.Duration, "step", cfg.TimeStep, "seed", cfg.Seed)
	run, _, err := service.Execute(cfg, observe)
	if err != nil {
		out.Flush()
		logg.Fatal("simulation failed", "err", err)
	}
	if !*quiet {
		fmt.Fprintln(out)
	}
	if err := report.Summary(out, run); err != nil {
		logg.Fatal("write summary", "err", err)
	}
	if *debug {
		run.Timeline = nil
		run.Config = nil
		fmt.Fprintf(out, "\n%# v\n", pretty.Formatter(run))
	}
}

// runHashPassword prints a bcrypt hash for OPERATOR_PASSWORD_HASH. The
// password is read from the first line of stdin.
func runHashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	_ = fs.Parse(args)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fatalf("read password: %v", err)
	}
	plain := strings.TrimRight(line, "\r\n")
	if plain == "" {
		fatalf("empty password")
	}
	hash, err := utils.HashPassword(plain, *cost)
	if err != nil {
		fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
