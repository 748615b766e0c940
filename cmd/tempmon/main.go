// Command tempmon polls temperature sources and drives GPIO outputs
// from per-pin threshold conditions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/tempmon/internal/config"
	"github.com/sweeney/tempmon/internal/gpio"
	"github.com/sweeney/tempmon/internal/logic"
	"github.com/sweeney/tempmon/internal/loop"
	"github.com/sweeney/tempmon/internal/temp"
)

const defaultConfigPath = "./config.json"

func main() {
	interval := flag.Duration("interval", loop.DefaultInterval, "Tick interval")
	slice := flag.Duration("slice", loop.DefaultSlice, "Sleep slice between shutdown checks")
	chip := flag.String("chip", "gpiochip0", "GPIO character device chip")
	broker := flag.String("broker", "", `MQTT broker address serving "mqtt:" sources (empty to disable)`)
	check := flag.Bool("check", false, "Evaluate the configuration once and exit without touching GPIO")

	flag.Parse()

	path := defaultConfigPath
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	if err := run(path, *interval, *slice, *chip, *broker, *check); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps startup failures to the documented exit statuses:
// 2 for a configuration with zero pins, 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, config.ErrNoPins) {
		return 2
	}
	return 1
}

func run(path string, interval, slice time.Duration, chip, broker string, check bool) error {
	cfgs, err := config.Load(path)
	if err != nil {
		return err
	}
	log.Printf("loaded %d pins from %s", len(cfgs), path)

	var mqttSource *temp.MQTTSource
	if broker != "" {
		mqttSource, err = temp.NewMQTTSource(broker)
		if err != nil {
			return fmt.Errorf("init mqtt source: %w", err)
		}
		defer mqttSource.Close()
	}
	source := temp.NewRouter(mqttSource)

	// Check mode reads and evaluates once, driving nothing.
	if check {
		return checkConfig(os.Stdout, cfgs, source)
	}

	sink, err := gpio.NewCdevSink(chip)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer sink.Close()

	pins := make([]*logic.Pin, 0, len(cfgs))
	for _, cfg := range cfgs {
		if err := sink.Initialize(cfg.Pin); err != nil {
			return fmt.Errorf("init pin %d: %w", cfg.Pin, err)
		}
		pins = append(pins, logic.NewPin(cfg))
	}

	l := loop.New(pins, source, sink, interval, slice)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGXFSZ)
	go func() {
		<-sigCh
		l.RequestStop()
	}()

	l.Run()
	return nil
}

// checkConfig prints each pin's reading and condition verdict.
func checkConfig(w io.Writer, cfgs []logic.PinConfig, source logic.TemperatureSource) error {
	for _, cfg := range cfgs {
		if !cfg.Op.Valid() {
			fmt.Fprintf(w, "pin %d: unsupported operator %q\n", cfg.Pin, cfg.Op)
			continue
		}

		reading, err := source.Read(cfg.Source)
		if err != nil {
			fmt.Fprintf(w, "pin %d: read %q failed: %v\n", cfg.Pin, cfg.Source, err)
			continue
		}

		verdict := "no match"
		if cfg.Op.Eval(reading, cfg.Threshold) {
			verdict = "match"
		}
		fmt.Fprintf(w, "pin %d: %g %s %g: %s\n", cfg.Pin, reading, cfg.Op, cfg.Threshold, verdict)
	}
	return nil
}
