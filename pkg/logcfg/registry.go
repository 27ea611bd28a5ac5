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
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"os"
	"strings"
	"sync"
)

// SinkFactory creates a sink from the section args
type SinkFactory func(args map[string]interface{}) (Sink, error)

// EnricherFactory creates an enricher
type EnricherFactory func() Enricher

var (
	registryMutex sync.RWMutex

	sinkFactories = map[string]SinkFactory{
		"console": newConsoleSink,
		"file":    newFileSink,
	}

	enricherFactories = map[string]EnricherFactory{
		"fromlogcontext":       FromLogContext,
		"withmachinename":      WithMachineName,
		"withprocessid":        WithProcessID,
		"withexceptiondetails": WithExceptionDetails,
		"withdebuggerattached": WithDebuggerAttached,
		"witheventid":          WithEventID,
	}
)

// RegisterSink registers a sink that can be referenced by name in the WriteTo section. Names are case-insensitive.
// Registering a name again replaces the factory.
func RegisterSink(name string, factory SinkFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	sinkFactories[strings.ToLower(name)] = factory
}

// RegisterEnricher registers an enricher that can be referenced by name in the Enrich section. Names are
// case-insensitive.
func RegisterEnricher(name string, factory EnricherFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	enricherFactories[strings.ToLower(name)] = factory
}

func newSink(name string, args map[string]interface{}) (Sink, error) {
	registryMutex.RLock()
	factory, ok := sinkFactories[strings.ToLower(name)]
	registryMutex.RUnlock()
	if !ok {
		return nil, UnknownSinkErr.CausedBy(errors.Errorf("sink is not registered: %q", name))
	}
	sink, e := factory(args)
	if e != nil {
		return nil, InvalidConfigurationErr.CausedBy(errors.Wrapf(e, "invalid %q sink args", name))
	}
	return sink, nil
}

func newEnricher(name string) (Enricher, error) {
	registryMutex.RLock()
	factory, ok := enricherFactories[strings.ToLower(name)]
	registryMutex.RUnlock()
	if !ok {
		return nil, UnknownEnricherErr.CausedBy(errors.Errorf("enricher is not registered: %q", name))
	}
	return factory(), nil
}

type consoleArgs struct {
	Theme                    string
	Output                   string `validate:"omitempty,oneof=stdout stderr"`
	ForceColor               bool
	RestrictedToMinimumLevel string `validate:"omitempty,loglevel"`
}

func newConsoleSink(args map[string]interface{}) (Sink, error) {
	var parsed consoleArgs
	if e := decodeArgs(args, &parsed); e != nil {
		return nil, e
	}
	theme, e := ThemeByName(parsed.Theme)
	if e != nil {
		return nil, e
	}
	sink := Console(theme)
	sink.ForceColor = parsed.ForceColor
	if strings.EqualFold(parsed.Output, "stderr") {
		sink.Out = os.Stderr
	}
	sink.MinimumLevel = restrictedLevel(parsed.RestrictedToMinimumLevel)
	return sink, nil
}

type fileArgs struct {
	Path                     string `validate:"required"`
	Formatter                string
	RollingInterval          string
	RollOnFileSizeLimit      bool
	FileSizeLimitBytes       *int64 `validate:"omitempty,gte=0"`
	RetainedFileCountLimit   *int   `validate:"omitempty,gte=0"`
	RestrictedToMinimumLevel string `validate:"omitempty,loglevel"`
}

func newFileSink(args map[string]interface{}) (Sink, error) {
	var parsed fileArgs
	if e := decodeArgs(args, &parsed); e != nil {
		return nil, e
	}
	formatter, e := ParseFormatter(parsed.Formatter)
	if e != nil {
		return nil, e
	}
	interval, e := ParseRollingInterval(parsed.RollingInterval)
	if e != nil {
		return nil, e
	}
	sink := File(parsed.Path)
	sink.Formatter = formatter
	sink.RollingInterval = interval
	sink.RollOnFileSizeLimit = parsed.RollOnFileSizeLimit
	if parsed.FileSizeLimitBytes != nil {
		sink.FileSizeLimitBytes = *parsed.FileSizeLimitBytes
	}
	if parsed.RetainedFileCountLimit != nil {
		sink.RetainedFileCountLimit = *parsed.RetainedFileCountLimit
	}
	sink.MinimumLevel = restrictedLevel(parsed.RestrictedToMinimumLevel)
	return sink, nil
}

func decodeArgs(args map[string]interface{}, result interface{}) error {
	if e := decode(args, result); e != nil {
		return e
	}
	return getValidator().Struct(result)
}

// restrictedLevel expects a validated level name
func restrictedLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.TraceLevel
	}
	level, _ := ParseLevel(name)
	return level
}
