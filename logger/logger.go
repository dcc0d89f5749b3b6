// Copyright 2023 The Topograf Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
	Package logger provides per-module logrus loggers for the topograf tool.
	Every module logger shares one output and one level; the module name
	is part of each line.
*/
package logger

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	ColorBlack = iota + 30
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

const timestampFormat = "2006-01-02 15:04:05.000"

type moduleFormatter struct {
	module string
	colors bool
}

func levelColor(level log.Level) int {
	switch level {
	case log.TraceLevel:
		return ColorCyan
	case log.DebugLevel:
		return ColorBlue
	case log.WarnLevel:
		return ColorYellow
	case log.ErrorLevel:
		return ColorRed
	case log.FatalLevel, log.PanicLevel:
		return ColorMagenta
	default:
		return ColorGreen
	}
}

func (f *moduleFormatter) Format(entry *log.Entry) ([]byte, error) {
	levelText := strings.ToUpper(entry.Level.String())[0:4]

	var fields strings.Builder
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&fields, " %s=%v", k, entry.Data[k])
	}

	timestamp := entry.Time.Format(timestampFormat)
	if !f.colors {
		return []byte(fmt.Sprintf("[%s] %s ▶ %s - %s%s\n",
			timestamp,
			f.module,
			levelText,
			entry.Message,
			fields.String(),
		)), nil
	}
	return []byte(fmt.Sprintf("\x1b[%dm[%s]\x1b[0m\x1b[%dm %s ▶ %s \x1b[0m- %s%s\n",
		ColorWhite,
		timestamp,
		levelColor(entry.Level),
		f.module,
		levelText,
		entry.Message,
		fields.String(),
	)), nil
}

// Logger holds everything needed to create module specific loggers.
type Logger struct {
	logOut io.Writer
	level  log.Level
	colors bool
}

// GetLogger returns a per-module logger that writes to the backend.
func (l *Logger) GetLogger(module string) *log.Logger {
	baseLogger := log.New()
	baseLogger.Formatter = &moduleFormatter{module: module, colors: l.colors}
	baseLogger.Out = l.logOut
	baseLogger.Level = l.level
	return baseLogger
}

// New returns new instance of logger. An empty f logs to stdout, disable
// discards everything. Colours are only used on stdout.
func New(f string, level string, disable bool) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var logOut io.Writer
	colors := false
	if disable {
		logOut = ioutil.Discard
	} else if f == "" {
		logOut = os.Stdout
		colors = true
	} else {
		const fileMode = 0600

		flags := os.O_CREATE | os.O_APPEND | os.O_WRONLY
		logOut, err = os.OpenFile(f, flags, fileMode)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to create log file: %v", err)
		}
	}

	return &Logger{
		logOut: logOut,
		level:  lvl,
		colors: colors,
	}, nil
}

// NewWriter returns a logger writing uncoloured lines to w.
func NewWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &Logger{logOut: w, level: lvl}, nil
}
