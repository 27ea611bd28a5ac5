/*
 * Copyright (c) 2019 OysterPack, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logcfg

import (
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"io"
	"os"
	"strings"
	"time"
)

// Sink is a log event destination
type Sink interface {
	// Open returns the writer for the sink. If the writer implements io.Closer, then it is closed when the Logger is
	// closed.
	Open() (io.Writer, error)
	// Level returns the minimum level of events written to the sink
	Level() zerolog.Level
}

// WriterSink writes compact JSON events to the writer. The writer is never closed by the logger.
type WriterSink struct {
	Writer       io.Writer
	MinimumLevel zerolog.Level
}

// Writer returns a sink that writes compact JSON events to w
func Writer(w io.Writer) *WriterSink {
	return &WriterSink{Writer: w, MinimumLevel: zerolog.TraceLevel}
}

// Open implements the Sink interface
func (s *WriterSink) Open() (io.Writer, error) {
	if s.Writer == nil {
		return nil, errors.New("writer sink has no writer")
	}
	return writeOnly{s.Writer}, nil
}

// Level implements the Sink interface
func (s *WriterSink) Level() zerolog.Level {
	return s.MinimumLevel
}

// ConsoleSink writes human-readable events: `[15:04:05 INF] message key=value`
type ConsoleSink struct {
	// Out defaults to os.Stdout
	Out   io.Writer
	Theme Theme
	// ForceColor colours the output even if Out is not a terminal
	ForceColor   bool
	MinimumLevel zerolog.Level
}

// Console returns a sink that writes to stdout using the specified theme
func Console(theme Theme) *ConsoleSink {
	return &ConsoleSink{
		Out:          os.Stdout,
		Theme:        theme,
		MinimumLevel: zerolog.TraceLevel,
	}
}

// Open implements the Sink interface
func (s *ConsoleSink) Open() (io.Writer, error) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	w := zerolog.ConsoleWriter{Out: out}
	s.Theme.apply(&w, s.ForceColor || (s.Theme.Name != ThemeNone.Name && isTerminal(out)))
	// the console writer closes Out when closed
	return writeOnly{w}, nil
}

// Level implements the Sink interface
func (s *ConsoleSink) Level() zerolog.Level {
	return s.MinimumLevel
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type writeOnly struct {
	io.Writer
}

// Formatter is the file event format
type Formatter int

// file formatters
const (
	// CompactJSON writes one JSON object per event
	CompactJSON Formatter = iota
	// Text writes the console layout without colours
	Text
)

func (f Formatter) String() string {
	if f == Text {
		return "text"
	}
	return "compact"
}

// ParseFormatter parses the formatter name. Names containing "compact" or "json" map to CompactJSON.
func ParseFormatter(name string) (Formatter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "", strings.Contains(name, "compact"), strings.Contains(name, "json"):
		return CompactJSON, nil
	case name == "text", name == "plain", name == "console":
		return Text, nil
	}
	return CompactJSON, errors.Errorf("unknown formatter: %q", name)
}

// file sink defaults
const (
	DefaultFileSizeLimitBytes     int64 = 1 << 30
	DefaultRetainedFileCountLimit       = 31
)

// FileSink writes events to a rolling file
type FileSink struct {
	// Path is the file path. When rolling by interval, the period stamp is inserted before the extension, e.g.,
	// "logs/app-.log" is written to "logs/app-20261019.log".
	Path            string
	Formatter       Formatter
	RollingInterval RollingInterval
	// RollOnFileSizeLimit rolls the file when it reaches FileSizeLimitBytes. If false, events are dropped once the limit
	// is reached, until the next period.
	RollOnFileSizeLimit bool
	// FileSizeLimitBytes <= 0 means unlimited
	FileSizeLimitBytes int64
	// RetainedFileCountLimit <= 0 means all files are retained
	RetainedFileCountLimit int
	MinimumLevel           zerolog.Level
	// Clock defaults to time.Now
	Clock func() time.Time
}

// File returns a compact JSON file sink that never rolls, with the default size and retention limits
func File(path string) *FileSink {
	return &FileSink{
		Path:                   path,
		Formatter:              CompactJSON,
		RollingInterval:        Infinite,
		FileSizeLimitBytes:     DefaultFileSizeLimitBytes,
		RetainedFileCountLimit: DefaultRetainedFileCountLimit,
		MinimumLevel:           zerolog.TraceLevel,
	}
}

// RollingFile returns a compact JSON file sink that rolls by interval and on the file size limit
func RollingFile(path string, interval RollingInterval) *FileSink {
	sink := File(path)
	sink.RollingInterval = interval
	sink.RollOnFileSizeLimit = true
	return sink
}

// Open implements the Sink interface
func (s *FileSink) Open() (io.Writer, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("file sink path is required")
	}
	file, e := newRollingFile(s)
	if e != nil {
		return nil, e
	}
	if s.Formatter == Text {
		w := zerolog.ConsoleWriter{Out: file}
		ThemeNone.apply(&w, false)
		return &textFile{Writer: writeOnly{w}, file: file}, nil
	}
	return file, nil
}

// Level implements the Sink interface
func (s *FileSink) Level() zerolog.Level {
	return s.MinimumLevel
}

type textFile struct {
	io.Writer
	file *rollingFile
}

func (f *textFile) Close() error {
	return f.file.Close()
}
