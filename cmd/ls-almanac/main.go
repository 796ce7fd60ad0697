// Command ls-almanac is a terminal almanac of daylight and moonlight.
// On a terminal it runs an interactive chart TUI; piped or given a
// headless flag it prints a fixed-format report, JSON or CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/locate"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/ui"
	"github.com/litescript/ls-almanac/internal/version"
)

// Headless output flags. Any of them, or a non-terminal stdout, selects
// report mode over the TUI.
var (
	reportMode  bool
	jsonPath    string
	csvMode     string
	seasonsMode bool
	yearFlag    int
	watchEvery  time.Duration
)

// minWatch is the floor for the watch interval.
const minWatch = time.Second

func main() {
	nameFlag := flag.String("name", "", "display name for the location")
	latFlag := flag.Float64("lat", 0, "observer latitude in decimal degrees, north positive")
	lonFlag := flag.Float64("lon", 0, "observer longitude in decimal degrees, east positive")
	tzFlag := flag.Float64("tz", 0, "clock offset from UTC in hours (e.g. -5, 5.5)")
	dateFlag := flag.String("date", "", "date as YYYY-MM-DD (default today)")
	horizonFlag := flag.Float64("horizon", astro.DefaultHorizonDeg, "horizon altitude in degrees")
	modelFlag := flag.String("model", "", "day length model: iterative or spencer")
	locateFlag := flag.Bool("locate", false, "resolve location and clock offset by IP before computing")
	configFlag := flag.String("config", "", "path to the TOML config file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "print version and exit")

	flag.BoolVar(&reportMode, "report", false, "print the day report instead of the TUI")
	flag.StringVar(&jsonPath, "json", "", "write the day report as JSON to this file, - for stdout")
	flag.StringVar(&csvMode, "csv", "", "write a CSV series to stdout: solar, moon or year")
	flag.BoolVar(&seasonsMode, "seasons", false, "print the equinox and solstice table")
	flag.IntVar(&yearFlag, "year", 0, "year for -csv year and -seasons (default the report's)")
	flag.DurationVar(&watchEvery, "watch", 0, "re-run the headless output at this interval (e.g. 1m)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-almanac v%s\n", version.Version)
		return
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	params := loadParams(*configFlag, logger)

	locator := locate.NewClient()
	if *locateFlag {
		if res, err := locator.Locate(ctx); err != nil {
			logger.Warn("Geolocation failed: %v", err)
		} else {
			offset, mismatch := locate.ReconcileOffset(res.UTCOffset, locate.SystemOffset(time.Now()))
			if mismatch {
				logger.Warn("Network UTC offset %+.2f differs from the system clock, using the network value", res.UTCOffset)
			}
			params.Name = res.City
			params.LatDeg = res.Latitude
			params.LonDeg = res.Longitude
			params.TZHours = offset
		}
	}

	// Explicit flags take precedence over both the config file and the
	// geolocation result.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			params.Name = *nameFlag
		case "lat":
			params.LatDeg = *latFlag
		case "lon":
			params.LonDeg = *lonFlag
		case "tz":
			params.TZHours = *tzFlag
		case "horizon":
			params.HorizonDeg = *horizonFlag
		}
	})
	if *modelFlag != "" {
		mdl, err := astro.ModelByName(*modelFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		params.Model = mdl
	}
	followToday := *dateFlag == ""
	if followToday {
		params.Date, _ = astro.ClockAt(time.Now(), params.TZHours)
	} else {
		d, err := astro.ParseDate(*dateFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		params.Date = d
	}

	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stateMgr := state.NewManager(params)

	headless := reportMode || jsonPath != "" || csvMode != "" || seasonsMode ||
		watchEvery > 0 || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		runHeadless(ctx, stateMgr, followToday)
		return
	}

	model := ui.New(stateMgr, locator)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadParams builds the starting parameters from the config file,
// falling back to the built-in defaults when it is absent or broken.
func loadParams(path string, logger *logging.Logger) almanac.Params {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Debug("No config dir: %v", err)
			return paramsFromConfig(config.Default())
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Warn("Config: %v (using defaults)", err)
		cfg = config.Default()
	}
	return paramsFromConfig(cfg)
}

// paramsFromConfig converts the file-backed defaults to engine
// parameters.
func paramsFromConfig(cfg config.Config) almanac.Params {
	p := almanac.DefaultParams()
	p.Name = cfg.Name
	p.LatDeg = cfg.Latitude
	p.LonDeg = cfg.Longitude
	p.TZHours = cfg.UTCOffset
	p.HorizonDeg = cfg.HorizonDeg
	if mdl, err := astro.ModelByName(cfg.Model); err == nil {
		p.Model = mdl
	}
	return p
}

// runHeadless prints the requested headless output, once or on a watch
// interval. Watch mode keeps the report on today when no explicit date
// was given.
func runHeadless(ctx context.Context, stateMgr *state.Manager, followToday bool) {
	if !reportMode && jsonPath == "" && csvMode == "" && !seasonsMode {
		reportMode = true
	}

	outputOnce := func() error {
		if followToday {
			today, _ := astro.ClockAt(time.Now(), stateMgr.Params().TZHours)
			if err := stateMgr.SetDate(today); err != nil {
				return err
			}
		}

		snap := stateMgr.Snapshot()
		if snap.Report == nil {
			return snap.LastError
		}
		r := snap.Report

		if csvMode != "" {
			if err := writeCSV(stateMgr, r); err != nil {
				return err
			}
		}
		if jsonPath != "" {
			if err := writeJSON(r); err != nil {
				return err
			}
		}
		if seasonsMode && !reportMode {
			writeSeasons(os.Stdout, r)
		}
		if reportMode {
			almanac.WriteReport(os.Stdout, r, time.Now())
		}
		return nil
	}

	if watchEvery == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if watchEvery < minWatch {
		watchEvery = minWatch
	}
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	ticker := time.NewTicker(watchEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// writeCSV dispatches one CSV series to stdout.
func writeCSV(stateMgr *state.Manager, r *almanac.Report) error {
	switch csvMode {
	case "solar":
		return almanac.WriteSolarCSV(os.Stdout, r)
	case "moon":
		return almanac.WriteLunarCSV(os.Stdout, r)
	case "year":
		year := yearFlag
		if year == 0 {
			year = r.Params.Date.Year
		}
		return almanac.WriteYearCSV(os.Stdout, stateMgr.Year(year))
	default:
		return fmt.Errorf("unknown csv series %q (want solar, moon or year)", csvMode)
	}
}

// writeJSON writes the report export to jsonPath, - meaning stdout.
func writeJSON(r *almanac.Report) error {
	export := almanac.ExportReport(r, time.Now())
	if jsonPath == "-" {
		return export.WriteJSON(os.Stdout)
	}
	f, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeSeasons prints the equinox and solstice table for the report's
// year, or for -year when it names a different one.
func writeSeasons(w io.Writer, r *almanac.Report) {
	year := r.Params.Date.Year
	marks := r.Seasons
	if yearFlag != 0 && yearFlag != year {
		year = yearFlag
		marks = astro.SeasonMarks(year)
	}
	fmt.Fprintf(w, "Seasons %d\n", year)
	for _, s := range marks {
		fmt.Fprintf(w, "  %-20s %s  %s UTC\n", s.Name, s.Date, almanac.FormatClock(s.HourUTC))
	}
}
