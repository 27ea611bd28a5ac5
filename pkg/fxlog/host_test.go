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
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"github.com/oysterpack/fxlog/pkg/fxlog"
	"github.com/oysterpack/fxlog/pkg/guard"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"strings"
	"testing"
)

func TestAddLogging_NilBuilder(t *testing.T) {
	b, err := fxlog.AddLogging(nil)
	assert.Nil(t, b)
	require.Error(t, err)
	assert.True(t, guard.IsArgumentErr(err))
	assert.Contains(t, err.Error(), "builder")
}

func TestAddLogging_ReturnsSameBuilder(t *testing.T) {
	builder := fxapp.NewBuilder(newDesc(t))
	b, err := fxlog.AddLogging(builder)
	require.NoError(t, err)
	assert.Same(t, builder, b)
}

func TestAddLogging_FromSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	builder, err := fxlog.AddLogging(
		fxapp.NewBuilder(newDesc(t)).
			SetEnvironment(fxapp.Staging).
			SetConfig(readYAML(t, fileSinkYAML("Zerolog", path))),
	)
	require.NoError(t, err)
	app, err := builder.
		Invoke(func(logger *zerolog.Logger) {
			logger.Debug().Msg("configured from section")
		}).
		Build()
	require.NoError(t, err)
	runApp(t, app)

	events := readLogFile(t, path)
	require.NotEmpty(t, events)
	found := false
	for _, event := range events {
		assert.Equal(t, "foo", event.Str(logcfg.ApplicationNameProperty))
		assert.Equal(t, fxapp.Staging, event.Str(logcfg.EnvironmentProperty))
		assert.True(t, event.Has(logcfg.MachineNameProperty))
		if event.Str(logcfg.MessageField) == "configured from section" {
			found = true
		}
	}
	assert.True(t, found, "the section minimum level should have been applied")
}

func TestAddLogging_Defaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	builder, err := fxlog.AddLogging(fxapp.NewBuilder(newDesc(t)).SetEnvironment(fxapp.Development))
	require.NoError(t, err)
	app, err := builder.Build()
	require.NoError(t, err)
	runApp(t, app)

	// the default file rolls daily
	files, err := filepath.Glob(filepath.Join(dir, logcfg.FriendlyName()+"-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	events := readLogFile(t, files[0])
	require.NotEmpty(t, events)
	for _, event := range events {
		assert.Equal(t, "foo", event.Str(logcfg.ApplicationNameProperty))
		assert.Equal(t, fxapp.Development, event.Str(logcfg.EnvironmentProperty))
		assert.True(t, event.Has(logcfg.MachineNameProperty))
	}
}

func TestAddLogging_InvalidSection(t *testing.T) {
	config := readYAML(t, `
Zerolog:
  WriteTo:
    - Name: Carrier-Pigeon
`)
	builder, err := fxlog.AddLogging(fxapp.NewBuilder(newDesc(t)).SetConfig(config))
	require.NoError(t, err)
	_, err = builder.Build()
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "carrier-pigeon")
}

func TestAddLoggingSection_Arguments(t *testing.T) {
	b, err := fxlog.AddLoggingSection(nil, "Zerolog")
	assert.Nil(t, b)
	assert.True(t, guard.IsArgumentErr(err))

	for _, name := range []string{"", "  "} {
		b, err := fxlog.AddLoggingSection(fxapp.NewBuilder(newDesc(t)), name)
		assert.Nil(t, b)
		require.Error(t, err)
		assert.True(t, guard.IsArgumentErr(err))
		assert.Contains(t, err.Error(), "sectionName")
	}

	builder := fxapp.NewBuilder(newDesc(t))
	b, err = fxlog.AddLoggingSection(builder, "Zerolog")
	require.NoError(t, err)
	assert.Same(t, builder, b)
}

func TestAddLoggingSection_NestedSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	config := readYAML(t, `
Services:
  Logging:
    MinimumLevel: Debug
    WriteTo:
      - Name: File
        Args:
          path: `+filepath.ToSlash(path)+`
`)
	builder, err := fxlog.AddLoggingSection(fxapp.NewBuilder(newDesc(t)).SetConfig(config), "Services:Logging")
	require.NoError(t, err)
	app, err := builder.Build()
	require.NoError(t, err)
	runApp(t, app)

	events := readLogFile(t, path)
	require.NotEmpty(t, events)
	for _, event := range events {
		assert.Equal(t, "foo", event.Str(logcfg.ApplicationNameProperty))
		assert.False(t, event.Has(logcfg.MachineNameProperty))
	}
}

func TestAddLoggingSection_MissingSection(t *testing.T) {
	builder, err := fxlog.AddLoggingSection(fxapp.NewBuilder(newDesc(t)), "Services:Logging")
	require.NoError(t, err)
	app, err := builder.Build()
	require.NoError(t, err)
	runApp(t, app)
}
