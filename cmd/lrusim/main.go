// Command lrusim replays a cache access trace against a size-aware LRU cache
// and reports how it behaved.
package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"code.cloudfoundry.org/bytefmt"
	hlru "github.com/hashicorp/golang-lru"
	"github.com/mcheviron/lru"
	"github.com/mcheviron/lru/internal/trace"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "lrusim"
	app.Usage = "replay an access trace against a size-aware LRU cache"
	app.ArgsUsage = "<trace file|->"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "capacity, c",
			Value: "1024",
			Usage: "cache capacity in weight units, e.g. 4096 or 64M",
		},
		cli.StringFlag{
			Name:  "default-weight",
			Value: "1",
			Usage: "weight of add lines that carry none",
		},
		cli.BoolFlag{
			Name:  "compare",
			Usage: "replay into a count-bounded hashicorp LRU alongside and count disagreements",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "log rejected items and disagreements",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		return run(ctx, out)
	}
	return app
}

func run(ctx *cli.Context, out io.Writer) error {
	if ctx.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("cmd", "lrusim")

	capacity, err := trace.ParseWeight(ctx.String("capacity"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("bad --capacity: %v", err), 2)
	}
	defaultWeight, err := trace.ParseWeight(ctx.String("default-weight"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("bad --default-weight: %v", err), 2)
	}

	in, closer, err := openTrace(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer closer()

	registry := gometrics.NewRegistry()
	cache, err := lru.New(lru.Config[string, uint64, uint64]{
		Capacity:      capacity,
		DefaultWeight: defaultWeight,
		Logger:        log,
		Registry:      registry,
		Name:          "lrusim",
	})
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	sim := &simulator{cache: cache, defaultWeight: defaultWeight, log: log}
	if ctx.Bool("compare") {
		if capacity > math.MaxInt32 {
			return cli.NewExitError("--compare needs a capacity that fits an entry count", 2)
		}
		sim.oracle, err = hlru.New(int(capacity))
		if err != nil {
			return cli.NewExitError(err.Error(), 2)
		}
	}

	rep, err := sim.replay(trace.NewReader(in))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	log.WithFields(logrus.Fields{
		"events":    rep.Events,
		"hits":      rep.Stats.Hits,
		"misses":    rep.Stats.Misses,
		"evictions": rep.Stats.Evictions,
		"rejected":  rep.Rejected,
	}).Info("Trace replayed")
	printReport(out, rep, capacity, sim.oracle != nil)
	gometrics.WriteOnce(registry, out)
	return nil
}

func openTrace(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func printReport(out io.Writer, rep report, capacity uint64, compared bool) {
	fmt.Fprintf(out, "events:     %d\n", rep.Events)
	fmt.Fprintf(out, "hits:       %d\n", rep.Stats.Hits)
	fmt.Fprintf(out, "misses:     %d\n", rep.Stats.Misses)
	fmt.Fprintf(out, "hit ratio:  %.4f\n", rep.Stats.HitRatio())
	fmt.Fprintf(out, "evictions:  %d\n", rep.Stats.Evictions)
	fmt.Fprintf(out, "rejected:   %d\n", rep.Rejected)
	fmt.Fprintf(out, "entries:    %d\n", rep.Stats.Len)
	fmt.Fprintf(out, "weight:     %s of %s\n", bytefmt.ByteSize(rep.Stats.Weight), bytefmt.ByteSize(capacity))
	if compared {
		fmt.Fprintf(out, "disagreements: %d\n", rep.Disagreements)
	}
}
