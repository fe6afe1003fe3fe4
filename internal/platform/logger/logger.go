package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a sugared zap logger that scrubs sensitive fields and study
// free text before they reach any sink.
type Logger struct {
	s     *zap.SugaredLogger
	scrub scrubber
}

// FileSink enables a rotating JSON file next to the console output.
type FileSink struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func New(mode string) (*Logger, error) {
	return NewWithFile(mode, nil)
}

// NewWithFile builds the console logger for mode ("prod"/"production" or
// anything else for development) and tees it into sink when one is given.
func NewWithFile(mode string, sink *FileSink) (*Logger, error) {
	cfg := consoleConfig(mode)
	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if sink != nil && strings.TrimSpace(sink.Path) != "" {
		fileCore, err := rotatingCore(sink, cfg.Level)
		if err != nil {
			return nil, err
		}
		base = base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}
	return &Logger{s: base.Sugar(), scrub: scrubberFromEnv()}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

func consoleConfig(mode string) zap.Config {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		return cfg
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg
	}
}

func rotatingCore(sink *FileSink, level zap.AtomicLevel) (zapcore.Core, error) {
	if err := os.MkdirAll(filepath.Dir(sink.Path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	w := &lumberjack.Logger{
		Filename:   sink.Path,
		MaxSize:    positiveOr(sink.MaxSizeMB, 100),
		MaxBackups: positiveOr(sink.MaxBackups, 3),
		MaxAge:     positiveOr(sink.MaxAgeDays, 28),
		Compress:   true,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level), nil
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func (l *Logger) Sync() { _ = l.s.Sync() }

func (l *Logger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, l.scrub.fields(kv)...) }
func (l *Logger) Info(msg string, kv ...interface{}) { l.s.Infow(msg, l.scrub.fields(kv)...) }
func (l *Logger) Warn(msg string, kv ...interface{}) { l.s.Warnw(msg, l.scrub.fields(kv)...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, l.scrub.fields(kv)...) }
func (l *Logger) Fatal(msg string, kv ...interface{}) { l.s.Fatalw(msg, l.scrub.fields(kv)...) }

func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{s: l.s.With(l.scrub.fields(kv)...), scrub: l.scrub}
}

// scrubber masks credentials and hashes identifiers. The zero value passes
// fields through untouched.
type scrubber struct {
	enabled bool
	salt    string
}

// LOG_REDACTION_ENABLED defaults to on; LOG_HASH_SALT salts identifier hashes.
func scrubberFromEnv() scrubber {
	sc := scrubber{enabled: true, salt: strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
	case "0", "false", "no", "off":
		sc.enabled = false
	}
	return sc
}

var (
	secretKeyParts = []string{"token", "authorization", "password", "secret", "dsn", "api_key"}

	// user names and schedule notes are typed by the user
	hashedKeys = map[string]bool{"user_name": true, "notes": true}
)

func (sc scrubber) fields(kv []interface{}) []interface{} {
	if !sc.enabled || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		name := stringify(kv[i])
		out = append(out, name, sc.value(strings.ToLower(strings.TrimSpace(name)), kv[i+1]))
	}
	if len(kv)%2 == 1 {
		out = append(out, kv[len(kv)-1])
	}
	return out
}

func (sc scrubber) value(key string, v interface{}) interface{} {
	if key == "" {
		return v
	}
	for _, part := range secretKeyParts {
		if strings.Contains(key, part) {
			return "[REDACTED]"
		}
	}
	if hashedKeys[key] || strings.Contains(key, "user_id") {
		return sc.hash(v)
	}
	return v
}

func (sc scrubber) hash(v interface{}) string {
	raw := stringify(v)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(sc.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
