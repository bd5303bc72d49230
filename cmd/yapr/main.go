// Command yapr tails the game log and keeps a live picture of nearby
// players, transits, kills and vehicles.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yertz/yapr/internal/alert"
	"github.com/yertz/yapr/internal/bootstrap"
	"github.com/yertz/yapr/internal/config"
	"github.com/yertz/yapr/internal/dispatcher"
	"github.com/yertz/yapr/internal/linesource"
	"github.com/yertz/yapr/internal/logging"
	"github.com/yertz/yapr/internal/monitor"
	intOtel "github.com/yertz/yapr/internal/otel"
	"github.com/yertz/yapr/internal/parser"
	"github.com/yertz/yapr/internal/queue"
	"github.com/yertz/yapr/internal/render"
	"github.com/yertz/yapr/internal/storage"
	"github.com/yertz/yapr/internal/worker"
	"github.com/yertz/yapr/internal/world"
	"github.com/yertz/yapr/pkg/core"
)

// AppName names the binary, the log files and the OTel service default.
const AppName = "yapr"

const configFileHint = config.FileName

const (
	evictInterval   = time.Second
	shutdownTimeout = 5 * time.Second
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var (
	// SessionStartTime names this session's log file
	SessionStartTime = time.Now()

	SlogManager  *logging.SlogManager
	Logger       *slog.Logger
	OTelProvider *intOtel.Provider
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "%s %s\n", AppName, Version)
		return 0
	}

	if err := config.Load(opts.ConfigDir); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	opts.apply()

	var model *world.Model
	identity := func() core.Identity {
		if model == nil {
			return core.NewIdentity()
		}
		return model.Identity()
	}

	logFile, err := setupLogging(stdout, identity)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logFile.Close()
	zlog := logging.NewZerolog(viper.GetString("logLevel"), stdout, logFile)

	tailCfg := config.GetTailConfig()
	if err := linesource.CheckLog(tailCfg.GameLog); err != nil {
		Logger.Error("Game log unavailable", "error", err)
		fmt.Fprintln(stderr, err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(stderr, "hint:", hint)
		}
		return 1
	}

	aliases, err := config.GetManagerAliases()
	if err != nil {
		Logger.Warn("Ignoring transit aliases", "error", err)
	}
	parser.SetManagerAliases(aliases)

	alertCfg := config.GetAlertConfig()
	model = world.New(
		world.WithLogger(Logger),
		world.WithSound(alertCfg.Enabled, alertCfg.Cooldown),
		world.WithHubKeys(parser.IsHubKey),
	)

	storageCfg := config.GetStorageConfig()
	backend, exporter, err := initStorage(storageCfg, model, zlog)
	if err != nil {
		Logger.Error("Storage unavailable", "error", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer backend.Close()

	var sink alert.Sink = alert.Nop{}
	if alertCfg.Enabled {
		sink = alert.NewBell(stdout)
	}

	eventDispatcher, err := dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		Logger.Error("Failed to create dispatcher", "error", err)
		return 1
	}
	workerManager := worker.NewManager(worker.Dependencies{
		World:  model,
		Parser: parser.NewParser(Logger),
		Logger: Logger,
		Alert:  sink,
	}, backend)
	workerManager.RegisterHandlers(eventDispatcher)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lines := queue.New[string]()
	monitorService := startMonitor(model, lines)

	var wg sync.WaitGroup
	start := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
			Logger.Debug("Stopped", "goroutine", name)
		}()
	}

	if tailCfg.Bootstrap {
		start("bootstrap", func() {
			if _, err := bootstrap.Scan(ctx, tailCfg.GameLog, model, Logger); err != nil {
				Logger.Warn("Identity bootstrap failed", "error", err)
			}
		})
	}
	start("tail", func() {
		tailer := linesource.NewTailer(tailCfg.GameLog, tailCfg.PollInterval, Logger)
		if err := tailer.Run(ctx, lines); err != nil {
			Logger.Error("Tail stopped", "error", err, "fatal", linesource.IsFatal(err))
		}
	})
	start("consumer", func() {
		if err := workerManager.Run(ctx, lines); err != nil {
			Logger.Error("Consumer stopped", "error", err)
			stop()
		}
	})
	start("evict", func() { workerManager.RunTicker(ctx, evictInterval) })
	start("export", func() { exporter.Run(ctx, storageCfg.Export, workerManager.FlushRequests()) })

	Logger.Info("Watching game log", "path", tailCfg.GameLog, "version", Version)
	<-ctx.Done()
	Logger.Info("Shutting down...")

	wg.Wait()
	eventDispatcher.Close()
	if monitorService != nil {
		monitorService.Stop()
	}
	shutdown(exporter)
	return 0
}

// setupLogging opens the session log file and builds the slog logger and
// the optional OTel providers.
func setupLogging(console io.Writer, identity func() core.Identity) (*os.File, error) {
	level := viper.GetString("logLevel")
	path := logging.LogFilePath(viper.GetString("logsDir"), AppName, SessionStartTime)
	logFile, err := logging.OpenLogFile(path)
	if err != nil {
		return nil, err
	}

	SlogManager = logging.NewSlogManager()

	otelCfg := config.GetOTelConfig()
	OTelProvider, err = intOtel.New(intOtel.Config{
		Enabled:        otelCfg.Enabled,
		ServiceName:    otelCfg.ServiceName,
		BatchTimeout:   otelCfg.BatchTimeout,
		LogWriter:      logFile,
		Endpoint:       otelCfg.Endpoint,
		Insecure:       otelCfg.Insecure,
		Metrics:        otelCfg.Metrics,
		MetricWriter:   logFile,
		MetricInterval: otelCfg.MetricInterval,
	})
	if err != nil {
		// logging still works without OTel
		OTelProvider, _ = intOtel.New(intOtel.Config{})
		fmt.Fprintln(console, "OTel disabled:", err)
	}

	SlogManager.Setup(logging.Options{
		Console:  console,
		File:     logFile,
		Level:    level,
		Provider: OTelProvider.LoggerProvider(),
		Context:  logging.IdentityContext(identity),
	})
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", path, "otel", OTelProvider.Enabled())
	return logFile, nil
}

func startMonitor(model *world.Model, lines *queue.Queue[string]) *monitor.Service {
	cfg := config.GetMonitorConfig()
	if !cfg.Enabled {
		return nil
	}
	svc := monitor.NewService(monitor.Dependencies{
		World:      model,
		Queue:      lines,
		Logger:     Logger,
		Palette:    render.PaletteByName(cfg.Theme),
		StatusFile: cfg.StatusFile,
		Interval:   cfg.Interval,
	})
	if err := svc.Start(); err != nil {
		Logger.Error("Status monitor not started", "error", err)
		return nil
	}
	Logger.Info("Status monitor started", "file", cfg.StatusFile, "theme", cfg.Theme)
	return svc
}

// shutdown performs the final save and flushes telemetry.
func shutdown(exporter *storage.Exporter) {
	if err := exporter.Flush(); err != nil {
		Logger.Error("Final save failed", "error", err)
	} else {
		Logger.Info("Final save complete")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := SlogManager.Flush(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "log flush failed:", err)
	}
	if err := OTelProvider.Shutdown(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "OTel shutdown failed:", err)
	}
}
