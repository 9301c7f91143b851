// package entrypoint is the actual entrypoint for the command line application
package entrypoint

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wrouesnel/posterserv/assets"
	"github.com/wrouesnel/posterserv/pkg/fonts"
	"github.com/wrouesnel/posterserv/pkg/kongutil"
	"github.com/wrouesnel/posterserv/pkg/overlay"
	"github.com/wrouesnel/posterserv/pkg/poster"
	"github.com/wrouesnel/posterserv/pkg/provider"
	"github.com/wrouesnel/posterserv/pkg/server"
	"github.com/wrouesnel/posterserv/version"
)

var CLI struct {
	Logging struct {
		Level      string `help:"logging level" default:"info"`
		Format     string `help:"logging format (${enum})" enum:"console,json" default:"json"`
		File       string `help:"also write logs to this file, rotated by size"`
		MaxSizeMB  int    `help:"rotate the log file at this size" default:"100"`
		MaxBackups int    `help:"rotated log files to keep" default:"3"`
	} `embed:"" prefix:"logging."`

	Assets   assets.Config   `embed:"" prefix:"assets."`
	Fonts    fonts.Config    `embed:"" prefix:"fonts."`
	Overlay  overlay.Config  `embed:"" prefix:"overlay."`
	Provider provider.Config `embed:"" prefix:"provider."`
	Poster   poster.Config   `embed:"" prefix:"poster."`

	Debug struct {
		Assets struct {
			List struct {
			} `cmd:"" help:"list embedded files in the binary"`
			Cat struct {
				Filename string `arg:"" name:"filename" help:"embedded file to emit to stdout"`
			} `cmd:"" help:"output the specifid file to stdout"`
		} `cmd:""`
	} `cmd:""`

	Api struct {
		server.ApiServerConfig `embed:""`
		PresetsDir             string `help:"Directory of additional preset YAML files"`
	} `cmd:"" help:"Launch the web API"`

	Composite struct {
		Background string `help:"Background image: a file path, http(s) URL or data URI" required:""`
		English    string `help:"English text"`
		Telugu     string `help:"Telugu text"`
		Output     string `help:"PNG file to write" default:"poster.png"`
	} `cmd:"" help:"Composite text onto a background image"`

	Generate struct {
		Idea     string `help:"Poster idea" required:""`
		Language string `help:"Languages to generate (${enum})" enum:"english,telugu,both" default:"both"`
		Output   string `help:"PNG file to write, named after the idea if empty"`
	} `cmd:"" help:"Generate a poster from an idea"`
}

func configFileName(prefix string, ext string) string {
	return fmt.Sprintf("%s%s.%s", prefix, version.Name, ext)
}

func configDirListGet() ([]string, []string) {
	deferredLogs := []string{}

	// Handle a sensible configuration loader path
	scope := gap.NewScope(gap.User, version.Name)
	baseConfigDirs, err := scope.ConfigDirs()
	if err != nil {
		deferredLogs = append(deferredLogs, err.Error())
	}

	configDirs := []string{}
	for _, configDir := range baseConfigDirs {
		configDirs = append(configDirs,
			path.Join(configDir, configFileName("", "json")),
			path.Join(configDir, configFileName("", "yml")),
			path.Join(configDir, configFileName("", "yaml")),
			path.Join(configDir, configFileName("", "toml")))
	}
	configDirs = append([]string{
		configFileName(".", "json"),
		configFileName(".", "yml"),
		configFileName(".", "yaml"),
		configFileName(".", "toml"),
		path.Join(os.Getenv("HOME"), configFileName(".", "json")),
		path.Join(os.Getenv("HOME"), configFileName(".", "yml")),
		path.Join(os.Getenv("HOME"), configFileName(".", "yaml")),
		path.Join(os.Getenv("HOME"), configFileName(".", "toml")),
	}, configDirs...)

	return configDirs, deferredLogs
}

// buildLogger builds the production logger, teeing into a rotated file when one is configured.
func buildLogger(stdErr io.Writer) (*zap.Logger, []string) {
	deferredLogs := []string{}

	logConfig := zap.NewProductionConfig()
	if err := logConfig.Level.UnmarshalText([]byte(CLI.Logging.Level)); err != nil {
		deferredLogs = append(deferredLogs, err.Error())
	}
	logConfig.Encoding = CLI.Logging.Format

	options := []zap.Option{}
	if CLI.Logging.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   CLI.Logging.File,
			MaxSize:    CLI.Logging.MaxSizeMB,
			MaxBackups: CLI.Logging.MaxBackups,
		}
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(logConfig.EncoderConfig), zapcore.AddSync(rotator), logConfig.Level)
		options = append(options, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	logger, err := logConfig.Build(options...)
	if err != nil {
		// Error unhandled since this is a very early failure
		_, _ = io.WriteString(stdErr, "Failure while building logger")
		return nil, deferredLogs
	}
	return logger, deferredLogs
}

func Entrypoint(stdOut io.Writer, stdErr io.Writer) int {
	appCtx, appCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer appCancel()

	configDirs, deferredLogs := configDirListGet()

	// Pick up GEMINI_API_KEY and friends from a local .env before flags are resolved.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		deferredLogs = append(deferredLogs, err.Error())
	}

	// Command line parsing can now happen
	ctx := kong.Parse(&CLI,
		kong.Name(version.Name),
		kong.Description(version.Description),
		kong.Configuration(kongutil.Hybrid, configDirs...))

	// Initialize logging as soon as possible
	logger, loggerLogs := buildLogger(stdErr)
	if logger == nil {
		return 1
	}
	deferredLogs = append(deferredLogs, loggerLogs...)
	defer func() { _ = logger.Sync() }()

	// Install as the global logger
	zap.ReplaceGlobals(logger)

	// Emit deferred logs
	logger.Debug("Using config paths", zap.Strings("configDirs", configDirs))
	for _, line := range deferredLogs {
		logger.Error(line)
	}

	assets.UseFilesystem(CLI.Assets.UseFilesystem)

	if err := dispatchCommands(ctx, appCtx, stdOut); err != nil {
		logger.Error("Error from command", zap.Error(err))
		return 1
	}

	logger.Debug("Exiting normally")
	return 0
}
