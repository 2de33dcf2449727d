package logsvc

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/eduhub/eduhub/core"
)

// ZapLogger writes structured logs with zap. args are key/value pairs.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ core.Logger = (*ZapLogger)(nil)

var isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

func zapConfig(conf *core.Config) zap.Config {
	if !conf.Debug {
		cfg := zap.NewProductionConfig()
		cfg.InitialFields = map[string]interface{}{"app": conf.AppName, "build": conf.Build}
		return cfg
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if isTerminal() {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

func NewZapLogger(conf *core.Config) (*ZapLogger, error) {
	l, err := zapConfig(conf).Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: l.Sugar()}, nil
}

// NewNopLogger discards everything; used by tests.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *ZapLogger) With(args ...interface{}) *ZapLogger {
	return &ZapLogger{sugar: l.sugar.With(args...)}
}

func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

// fields turns error values in key position into zap error fields.
func fields(args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args))
	for i := 0; i < len(args); i++ {
		if err, ok := args[i].(error); ok {
			out = append(out, zap.Error(err))
			continue
		}
		out = append(out, args[i])
		if i+1 < len(args) {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugw(msg, fields(args)...) }
func (l *ZapLogger) Info(msg string, args ...interface{})  { l.sugar.Infow(msg, fields(args)...) }
func (l *ZapLogger) Warn(msg string, args ...interface{})  { l.sugar.Warnw(msg, fields(args)...) }
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorw(msg, fields(args)...) }
func (l *ZapLogger) Fatal(msg string, args ...interface{}) { l.sugar.Fatalw(msg, fields(args)...) }
