// Command demo runs a headless tick loop and samples interpolated frames from
// a separate render goroutine, logging both sides.
package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/comalice/tickloop"
	"github.com/comalice/tickloop/ease"
	"github.com/comalice/tickloop/interpolate"
	"github.com/comalice/tickloop/realtime"
)

// beacon bounces between 0 and 1; a "flip" event reverses it.
type beacon struct {
	Level float32
	Dir   float32
	Tick  uint64
	Mode  string
}

func (b beacon) Interpolate(end beacon, t float32, curve ease.Curve) beacon {
	return beacon{
		Level: interpolate.Number(b.Level, end.Level, t, curve),
		Dir:   interpolate.Nearest(b.Dir, end.Dir, t, curve),
		Tick:  interpolate.Number(b.Tick, end.Tick, t, curve),
		Mode:  interpolate.Nearest(b.Mode, end.Mode, t, curve),
	}
}

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML config file")
	tps := pflag.Float64("tps", 0, "ticks per second (overrides config)")
	curve := pflag.String("curve", "", "easing curve for rendering (overrides config)")
	ticks := pflag.Uint64("ticks", 300, "stop after this many ticks, 0 runs until interrupted")
	fps := pflag.Float64("fps", 10, "render samples per second")
	metricsAddr := pflag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	pflag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("load .env")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	applyEnv(&cfg, os.Getenv)
	if pflag.CommandLine.Changed("tps") {
		cfg.TPS = *tps
	}
	if pflag.CommandLine.Changed("curve") {
		cfg.Curve = *curve
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, reg)
	}

	loop, events, _, _, err := realtime.InitSeeded[beacon, string](
		newStepper(*ticks),
		beacon{Dir: 1, Mode: "up"},
		cfg,
		realtime.WithLogger(log.With().Str("component", "loop").Logger()),
		realtime.WithRegisterer(reg),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init loop")
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := loop.Go(context.Background())

	go func() {
		<-sigCtx.Done()
		log.Info().Msg("shutting down")
		if err := events.Close(); err != nil && !errors.Is(err, tickloop.ErrChannelClosed) {
			log.Warn().Err(err).Msg("send close")
		}
	}()
	go flipper(sigCtx, events, time.Second)
	go render(loop, *fps)

	if err := <-errc; err != nil {
		log.Fatal().Err(err).Msg("loop failed")
	}
	log.Info().Uint64("ticks", loop.TickNumber()).Msg("demo complete")
}

func newStepper(limit uint64) realtime.StepFunc[beacon, string] {
	state := beacon{Dir: 1, Mode: "up"}
	return func(dt float32, events []tickloop.Event[string], control tickloop.Control, _ time.Time) (beacon, error) {
		for _, ev := range events {
			if ev.Payload == "flip" {
				state.Dir = -state.Dir
			}
		}
		state.Level += state.Dir * dt
		switch {
		case state.Level >= 1:
			state.Level, state.Dir = 1, -1
		case state.Level <= 0:
			state.Level, state.Dir = 0, 1
		}
		state.Mode = "up"
		if state.Dir < 0 {
			state.Mode = "down"
		}
		state.Tick++
		if limit > 0 && state.Tick >= limit {
			control.Stop()
		}
		return state, nil
	}
}

func flipper(ctx context.Context, events tickloop.Sender[string], every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := events.SendOther("flip"); err != nil {
				return
			}
		}
	}
}

func render(loop *realtime.Loop[beacon, string], fps float64) {
	if fps <= 0 {
		return
	}
	t := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer t.Stop()
	for {
		select {
		case <-loop.Done():
			return
		case <-t.C:
			frame, err := loop.Frame()
			if err != nil {
				log.Debug().Err(err).Msg("frame unavailable")
				continue
			}
			log.Info().
				Float32("level", frame.Level).
				Str("mode", frame.Mode).
				Uint64("tick", frame.Tick).
				Dur("deficit", loop.Deficit()).
				Msg("frame")
		}
	}
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server")
	}
}

func loadConfig(path string) (realtime.Config, error) {
	if path == "" {
		return realtime.ParseConfig(nil)
	}
	return realtime.LoadConfig(path)
}

// applyEnv overlays TICKLOOP_* variables onto cfg. Unparseable numbers are
// ignored with a warning.
func applyEnv(cfg *realtime.Config, getenv func(string) string) {
	if v := getenv("TICKLOOP_TPS"); v != "" {
		tps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Warn().Str("value", v).Msg("ignoring TICKLOOP_TPS")
		} else {
			cfg.TPS = tps
		}
	}
	if v := getenv("TICKLOOP_CURVE"); v != "" {
		cfg.Curve = v
	}
	if v := getenv("TICKLOOP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("TICKLOOP_METRICS_NAMESPACE"); v != "" {
		cfg.MetricsNamespace = v
	}
}
