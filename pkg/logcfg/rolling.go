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
	"fmt"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// RollingInterval is the period after which a new log file is started
type RollingInterval int

// rolling intervals
const (
	Infinite RollingInterval = iota
	Year
	Month
	Day
	Hour
	Minute
)

var rollingIntervalNames = map[RollingInterval]string{
	Infinite: "Infinite",
	Year:     "Year",
	Month:    "Month",
	Day:      "Day",
	Hour:     "Hour",
	Minute:   "Minute",
}

func (r RollingInterval) String() string {
	return rollingIntervalNames[r]
}

// ParseRollingInterval parses the interval name, case-insensitive. An empty name is Infinite.
func ParseRollingInterval(name string) (RollingInterval, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Infinite, nil
	}
	for interval, intervalName := range rollingIntervalNames {
		if strings.EqualFold(name, intervalName) {
			return interval, nil
		}
	}
	return Infinite, errors.Errorf("unknown rolling interval: %q", name)
}

func (r RollingInterval) layout() string {
	switch r {
	case Year:
		return "2006"
	case Month:
		return "200601"
	case Day:
		return "20060102"
	case Hour:
		return "2006010215"
	case Minute:
		return "200601021504"
	default:
		return ""
	}
}

// FileName returns the name of the file for the period containing t, e.g., "logs/app-.log" rolled daily becomes
// "logs/app-20261019.log"
func (r RollingInterval) FileName(path string, t time.Time) string {
	layout := r.layout()
	if layout == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + t.Format(layout) + ext
}

const (
	megabyte = 1024 * 1024
	// lumberjack defaults to 100 MB when MaxSize is zero
	unlimitedMaxSize = 1 << 20
)

// rollingFile switches files per period. Within a period, the file is rotated via lumberjack when the next event would
// exceed the size limit.
type rollingFile struct {
	mu sync.Mutex

	path     string
	interval RollingInterval
	limit    int64
	roll     bool
	retain   int
	now      func() time.Time

	current string
	size    int64
	out     *lumberjack.Logger
	closed  bool
}

func newRollingFile(s *FileSink) (*rollingFile, error) {
	if e := os.MkdirAll(filepath.Dir(s.Path), 0755); e != nil {
		return nil, errors.Wrapf(e, "failed to create log directory for: %s", s.Path)
	}
	now := s.Clock
	if now == nil {
		now = time.Now
	}
	f := &rollingFile{
		path:     s.Path,
		interval: s.RollingInterval,
		limit:    s.FileSizeLimitBytes,
		roll:     s.RollOnFileSizeLimit,
		retain:   s.RetainedFileCountLimit,
		now:      now,
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if e := f.open(f.interval.FileName(f.path, f.now())); e != nil {
		return nil, e
	}
	return f, nil
}

func (f *rollingFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, os.ErrClosed
	}
	if name := f.interval.FileName(f.path, f.now()); f.out == nil || name != f.current {
		if e := f.open(name); e != nil {
			return 0, e
		}
	}
	if f.limit > 0 && f.size+int64(len(p)) > f.limit {
		if !f.roll {
			// dropped until the next period
			return len(p), nil
		}
		// lumberjack only rolls on whole megabytes
		if f.size > 0 {
			if e := f.out.Rotate(); e != nil {
				return 0, e
			}
			f.size = 0
			f.prune()
		}
	}
	n, e := f.out.Write(p)
	f.size += int64(n)
	return n, e
}

func (f *rollingFile) open(name string) error {
	if f.out != nil {
		if e := f.out.Close(); e != nil {
			return e
		}
	}
	maxSize := unlimitedMaxSize
	if f.limit > 0 {
		maxSize = int((f.limit + megabyte - 1) / megabyte)
		if !f.roll {
			// the size limit is enforced by Write
			maxSize++
		}
	}
	maxBackups := 0
	if f.retain > 0 {
		maxBackups = f.retain - 1
		if maxBackups == 0 {
			maxBackups = 1
		}
	}
	f.out = &lumberjack.Logger{
		Filename:   name,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}
	f.current = name
	f.size = 0
	if info, e := os.Stat(name); e == nil {
		f.size = info.Size()
	}
	f.prune()
	return nil
}

// prune removes the oldest files, keeping the current file plus the most recent files up to the retained file count
func (f *rollingFile) prune() {
	if f.retain <= 0 {
		return
	}
	ext := filepath.Ext(f.path)
	matches, e := filepath.Glob(strings.TrimSuffix(f.path, ext) + "*" + ext)
	if e != nil {
		return
	}
	owned := f.fileNamePattern()

	type logFile struct {
		name    string
		modTime time.Time
	}
	files := make([]logFile, 0, len(matches))
	for _, match := range matches {
		if match == f.current || !owned.MatchString(filepath.Base(match)) {
			continue
		}
		info, e := os.Stat(match)
		if e != nil || info.IsDir() {
			continue
		}
		files = append(files, logFile{match, info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].name > files[j].name
		}
		return files[i].modTime.After(files[j].modTime)
	})
	// the current file counts towards the limit
	for i := f.retain - 1; i >= 0 && i < len(files); i++ {
		os.Remove(files[i].name)
	}
}

// fileNamePattern matches the period files and their size based backups, but not the files of another sink whose path
// shares the prefix, e.g., "app-services-20261019.log" is not owned by "app-.log"
func (f *rollingFile) fileNamePattern() *regexp.Regexp {
	ext := filepath.Ext(f.path)
	stem := strings.TrimSuffix(filepath.Base(f.path), ext)
	stamp := ""
	if n := len(f.interval.layout()); n > 0 {
		stamp = fmt.Sprintf(`\d{%d}`, n)
	}
	return regexp.MustCompile("^" + regexp.QuoteMeta(stem) + stamp + backupSuffix + regexp.QuoteMeta(ext) + "$")
}

// lumberjack names backups "<name>-2006-01-02T15-04-05.000<ext>"
const backupSuffix = `(-\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}\.\d{3})?`

func (f *rollingFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if f.out == nil {
		return nil
	}
	e := f.out.Close()
	f.out = nil
	return e
}
