// Package serverlog captures the supervised server's stderr into a log file
// the editor can open on demand.
package serverlog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/polder-ide/lahost/src/lahost/internal/fs"
	"github.com/polder-ide/lahost/src/lahost/internal/serverinfo"
)

const (
	_logDirName  = "lahost-server"
	_infoFileKey = "serverLog"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ServerLog is the sink for supervised-server stderr output. The same file
// persists across server restarts so one "open logs" target stays valid for
// the whole daemon lifetime.
type ServerLog interface {
	// Writer returns the sink to attach to the server's stderr.
	Writer() io.Writer
	// Path returns the log file's location on disk.
	Path() string
}

// Params define the dependencies for a new ServerLog.
type Params struct {
	fx.In

	FS        fs.HostFS
	Lifecycle fx.Lifecycle
	InfoFile  serverinfo.InfoFile
	Logger    *zap.SugaredLogger
}

type serverLog struct {
	writer io.Writer
	path   string
}

// New creates the server log file under the user's temp directory and
// publishes its path in the daemon info file.
func New(p Params) (ServerLog, error) {
	logsDirPath := filepath.Join(os.TempDir(), _logDirName)
	if err := p.FS.MkdirAll(logsDirPath); err != nil {
		return nil, err
	}

	logFile, err := p.FS.TempFile(logsDirPath, "server-*.log")
	if err != nil {
		return nil, err
	}

	if err := p.InfoFile.UpdateField(_infoFileKey, logFile.Name()); err != nil {
		return nil, err
	}

	// Write via a logger for timestamps and buffering.
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)
	fileLogger := zap.New(core).Sugar()

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			fileLogger.Sync()
			logFile.Close()
			return p.FS.Remove(logFile.Name())
		},
	})

	return &serverLog{
		writer: &lineWriter{logger: fileLogger},
		path:   logFile.Name(),
	}, nil
}

func (s *serverLog) Writer() io.Writer { return s.writer }

func (s *serverLog) Path() string { return s.path }

type lineWriter struct {
	logger *zap.SugaredLogger
}

// Write implements io.Writer by logging each non-empty line individually.
func (w *lineWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(string(p), "\n")
	for _, line := range lines {
		if len(line) > 0 {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
