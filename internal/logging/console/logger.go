package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// Level represents the severity attached to a log entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

// ParseLevel maps a configuration string to a Level. Unknown values resolve to
// LevelInfo and ok=false.
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	default:
		return LevelInfo, false
	}
}

// Options configures the console logger provider.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

type provider struct {
	writer   io.Writer
	clock    func() time.Time
	minLevel Level
	mu       sync.Mutex
}

// NewProvider constructs a console-backed logger provider. Entries are written
// as a single logfmt-style line: timestamp, level, message, sorted fields.
// Defaults: stdout, time.Now, DEBUG.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &provider{
		writer:   opts.Writer,
		clock:    opts.TimeFunc,
		minLevel: LevelDebug,
	}
	if p.writer == nil {
		p.writer = os.Stdout
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if opts.MinLevel != nil {
		p.minLevel = *opts.MinLevel
	}
	return p
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &consoleLogger{
		provider: p,
		fields:   map[string]any{"logger": name},
	}
}

func (p *provider) write(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// best effort, a broken writer must not take the caller down
	_, _ = io.WriteString(p.writer, line+"\n")
}

type consoleLogger struct {
	provider *provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*consoleLogger)(nil)
	_ interfaces.FieldsLogger = (*consoleLogger)(nil)
)

func (l *consoleLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *consoleLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *consoleLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *consoleLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *consoleLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }
func (l *consoleLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

func (l *consoleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return &consoleLogger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *consoleLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &consoleLogger{provider: l.provider, fields: maps.Clone(l.fields), ctx: ctx}
}

func (l *consoleLogger) log(level Level, msg string, args []any) {
	if l.provider == nil || level < l.provider.minLevel {
		return
	}

	fields := make(map[string]any, len(l.fields)+len(args)/2)
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	mergeArgs(fields, args)

	l.provider.write(formatEntry(l.provider.clock().UTC(), level, msg, fields))
}

// mergeArgs folds alternating key/value args into fields. A trailing key with
// no value, or a non-string key, lands under a positional name.
func mergeArgs(fields map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i == len(args)-1 {
			fields[fmt.Sprintf("field_%d", i/2)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = fmt.Sprintf("field_%d", i/2)
		}
		fields[key] = args[i+1]
	}
}

func formatEntry(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	return b.String()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return quote(v.UTC().Format(time.RFC3339Nano))
	case *time.Time:
		if v == nil {
			return "null"
		}
		return quote(v.UTC().Format(time.RFC3339Nano))
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.IndexFunc(value, func(r rune) bool { return r <= ' ' || r == '=' }) >= 0 {
		return strconv.Quote(value)
	}
	return value
}
