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

package fxlog_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/Masterminds/semver"
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type LogEvent map[string]interface{}

func (e LogEvent) Str(key string) string {
	s, _ := e[key].(string)
	return s
}

func (e LogEvent) Has(key string) bool {
	_, ok := e[key]
	return ok
}

func decodeLogEvents(t *testing.T, data []byte) []LogEvent {
	t.Helper()
	var events []LogEvent
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var event LogEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event), scanner.Text())
		events = append(events, event)
	}
	return events
}

func readLogFile(t *testing.T, path string) []LogEvent {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return decodeLogEvents(t, data)
}

func readYAML(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

// fileSinkYAML returns a configuration section that writes to a compact JSON file
func fileSinkYAML(section, path string) string {
	return fmt.Sprintf(`
%s:
  MinimumLevel: Debug
  WriteTo:
    - Name: File
      Args:
        path: %s
`, section, filepath.ToSlash(path))
}

func newDesc(t *testing.T) fxapp.Desc {
	t.Helper()
	desc, err := fxapp.NewDescBuilder().
		SetName("foo").
		SetVersion(semver.MustParse("0.1.0")).
		Build()
	require.NoError(t, err)
	return desc
}

// runApp runs the app until it is started, and then shuts it down, which closes the app logger
func runApp(t *testing.T, app fxapp.App) {
	t.Helper()
	errs := make(chan error, 1)
	go func() {
		errs <- app.Run()
	}()
	select {
	case <-app.Started():
	case err := <-errs:
		t.Fatalf("*** app failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("*** app timed out starting")
	}
	require.NoError(t, app.Shutdown())
	require.NoError(t, <-errs)
}

// captureGlobalLogger replaces the process-wide logger with a JSON logger writing to the returned buffer
func captureGlobalLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	global := zlog.Logger
	zlog.Logger = zerolog.New(buf)
	t.Cleanup(func() {
		zlog.Logger = global
	})
	return buf
}

// chdir changes the working directory for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
