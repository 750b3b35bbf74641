/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger = logrus.Logger

const timestampFormat = "2006-01-02 15:04:05.000"

// CallerKey carries a *runtime.Frame that replaces entry.Caller in the
// formatters. It is never printed as a field.
const CallerKey = "_caller"

var (
	loggerRegistryMu sync.RWMutex
	loggerRegistry   = map[string]*logrus.Logger{}

	settingsMu       sync.RWMutex
	defaultLevel     = logrus.InfoLevel
	consoleLogFormat = "text"
	consoleOutput    io.Writer = os.Stdout
	fileLogEnabled   = false
	fileLogDir       = "logs"
	fileLogMaxAge    = 7

	fileWriterMu sync.Mutex
	fileWriter   *lumberjack.Logger
)

func init() {
	ConfigureFromEnv()
}

// ConfigureFromEnv re-reads LOG_LEVEL, CONSOLE_LOG_FORMAT, FILE_LOG_ENABLED,
// FILE_LOG_DIR and FILE_LOG_MAX_AGE_DAYS. Call it again after the process
// environment has been extended (for example by a .env file).
func ConfigureFromEnv() {
	settingsMu.Lock()
	defaultLevel = ParseLogLevel(EnvDefaultString("LOG_LEVEL", "info"))
	consoleLogFormat = normalizeFormat(EnvDefaultString("CONSOLE_LOG_FORMAT", "text"))
	fileLogEnabled = EnvDefaultBool("FILE_LOG_ENABLED", false)
	fileLogDir = EnvDefaultString("FILE_LOG_DIR", "logs")
	fileLogMaxAge = EnvDefaultInt("FILE_LOG_MAX_AGE_DAYS", 7)
	lvl := defaultLevel
	settingsMu.Unlock()
	SetAllLoggersLevel(lvl)
}

func normalizeFormat(format string) string {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		return "json"
	}
	return "text"
}

// ConfigureConsoleLogFormat switches newly created loggers between "text" and "json".
func ConfigureConsoleLogFormat(format string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	consoleLogFormat = normalizeFormat(format)
}

// ConfigureConsoleOutput redirects newly created loggers. Nil restores stdout.
func ConfigureConsoleOutput(w io.Writer) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	consoleOutput = w
}

func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// NewLogger returns the logger registered under name, creating it on first use.
func NewLogger(name string) *logrus.Logger {
	loggerRegistryMu.RLock()
	l, ok := loggerRegistry[name]
	loggerRegistryMu.RUnlock()
	if ok {
		return l
	}

	settingsMu.RLock()
	format, out, level, withFile := consoleLogFormat, consoleOutput, defaultLevel, fileLogEnabled
	dir, maxAge := fileLogDir, fileLogMaxAge
	settingsMu.RUnlock()

	l = logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetReportCaller(true)
	if format == "json" {
		l.SetFormatter(&JSONLogFormatter{LoggerName: name})
	} else {
		l.SetFormatter(&Log4jColorFormatter{LoggerName: name, ColorLevel: true, NameWidth: 10})
	}
	if withFile {
		l.AddHook(&fileHook{
			writer:    sharedFileWriter(dir, maxAge),
			formatter: &JSONLogFormatter{LoggerName: name},
		})
	}

	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	if existing, ok := loggerRegistry[name]; ok {
		return existing
	}
	loggerRegistry[name] = l
	return l
}

func SetAllLoggersLevel(lvl logrus.Level) {
	loggerRegistryMu.RLock()
	defer loggerRegistryMu.RUnlock()
	for _, lg := range loggerRegistry {
		lg.SetLevel(lvl)
	}
}

// SetLoggerLevel changes the level of a single named logger and reports
// whether such a logger exists.
func SetLoggerLevel(name string, lvlStr string) bool {
	loggerRegistryMu.RLock()
	lg, ok := loggerRegistry[name]
	loggerRegistryMu.RUnlock()
	if !ok {
		return false
	}
	lg.SetLevel(ParseLogLevel(lvlStr))
	return true
}

func ConfigureLogLevel(levelStr string) {
	lvl := ParseLogLevel(levelStr)
	settingsMu.Lock()
	defaultLevel = lvl
	settingsMu.Unlock()
	SetAllLoggersLevel(lvl)
}

func sharedFileWriter(dir string, maxAgeDays int) io.Writer {
	fileWriterMu.Lock()
	defer fileWriterMu.Unlock()
	if fileWriter == nil {
		fileWriter = &lumberjack.Logger{
			Filename:   filepath.Join(dir, "dbinit.log"),
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
	}
	return fileWriter
}

type fileHook struct {
	writer    io.Writer
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(b)
	return err
}

// Log4jColorFormatter renders "time LEVEL pid --- [name] file:line : msg k=v".
type Log4jColorFormatter struct {
	LoggerName string
	ColorLevel bool
	NameWidth  int
}

func (f *Log4jColorFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	lvl := fmt.Sprintf("%5s", strings.ToUpper(entry.Level.String()))
	if f.ColorLevel {
		lvl = colorLevel(lvl, entry.Level)
	}
	name := f.LoggerName
	if f.NameWidth > 0 && len(name) > f.NameWidth {
		name = name[:f.NameWidth]
	}
	fmt.Fprintf(&b, "%s %s %-6d --- [%*s]", entry.Time.Format(timestampFormat), lvl, os.Getpid(), f.NameWidth, name)
	if caller := callerOf(entry); caller != "" {
		b.WriteString(" ")
		b.WriteString(caller)
	}
	b.WriteString(" : ")
	b.WriteString(entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// JSONLogFormatter writes one JSON object per line. HTTP request fields are
// lifted to the top level, everything else lands in "fields".
type JSONLogFormatter struct {
	LoggerName string
}

type jsonLogRecord struct {
	Time        string                 `json:"time"`
	Level       string                 `json:"level"`
	Logger      string                 `json:"logger"`
	Caller      string                 `json:"caller,omitempty"`
	Message     string                 `json:"message"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Method      string                 `json:"method,omitempty"`
	Path        string                 `json:"path,omitempty"`
	StatusCode  int                    `json:"status_code,omitempty"`
	LatencyTime string                 `json:"latency_time,omitempty"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
}

func (f *JSONLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	rec := jsonLogRecord{
		Time:    entry.Time.Format(timestampFormat),
		Level:   entry.Level.String(),
		Logger:  f.LoggerName,
		Message: entry.Message,
	}
	rec.Caller = callerOf(entry)
	extra := make(map[string]interface{}, len(entry.Data))
	for k, v := range entry.Data {
		switch k {
		case "client_ip":
			rec.ClientIP = fmt.Sprint(v)
		case "method":
			rec.Method = fmt.Sprint(v)
		case "path":
			rec.Path = fmt.Sprint(v)
		case "latency_time":
			rec.LatencyTime = fmt.Sprint(v)
		case CallerKey:
		case "status_code":
			if n, ok := v.(int); ok {
				rec.StatusCode = n
			} else {
				extra[k] = v
			}
		default:
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		rec.Fields = extra
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiFaint  = "\x1b[2m"
)

func colorLevel(s string, level logrus.Level) string {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return ansiFaint + s + ansiReset
	case logrus.InfoLevel:
		return ansiGreen + s + ansiReset
	case logrus.WarnLevel:
		return ansiYellow + s + ansiReset
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return ansiRed + s + ansiReset
	default:
		return ansiBlue + s + ansiReset
	}
}

// WithCaller returns an entry attributed to the function skip frames above
// the caller of WithCaller. Logging wrappers use it so the reported file:line
// is their caller's, not their own.
func WithCaller(l *logrus.Logger, skip int) *logrus.Entry {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return logrus.NewEntry(l)
	}
	return l.WithField(CallerKey, &runtime.Frame{PC: pc, File: file, Line: line})
}

func callerOf(entry *logrus.Entry) string {
	if frame, ok := entry.Data[CallerKey].(*runtime.Frame); ok && frame != nil {
		return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
	}
	if entry.Caller != nil {
		return fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	return ""
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k == CallerKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Since formats the elapsed time since start the way request logs expect it.
func Since(start time.Time) string {
	return time.Since(start).Round(time.Microsecond).String()
}
