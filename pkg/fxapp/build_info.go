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

package fxapp

import (
	"errors"
	"github.com/rs/zerolog"
	"runtime/debug"
)

// BuildInfo is logged with the app initialized event
type BuildInfo struct {
	Path string    // The main package Path
	Main Module    // The main module information
	Deps []*Module // Module dependencies
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (b *BuildInfo) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Path", b.Path).
		Object("Main", &b.Main).
		Array("Deps", b.depArr())
}

func (b *BuildInfo) depArr() *zerolog.Array {
	arr := zerolog.Arr()
	for _, d := range b.Deps {
		arr.Str(d.Path + "@" + d.Version)
	}
	return arr
}

// ReadBuildInfo returns the build information embedded in the running binary.
// The information is available only in binaries built with module support.
func ReadBuildInfo() (*BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, errors.New("build information is available only in binaries built with module support")
	}
	deps := make([]*Module, 0, len(buildInfo.Deps))
	for _, dep := range buildInfo.Deps {
		deps = append(deps, NewModule(dep))
	}
	return &BuildInfo{
		buildInfo.Path,
		Module{buildInfo.Main.Path, buildInfo.Main.Version, buildInfo.Main.Sum},
		deps,
	}, nil
}

// Module is a go module
type Module struct {
	Path     string
	Version  string
	Checksum string
}

// NewModule returns the module, or its replacement if it was replaced
func NewModule(m *debug.Module) *Module {
	d := m
	if m.Replace != nil {
		d = m.Replace
	}
	return &Module{d.Path, d.Version, d.Sum}
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (m *Module) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Path", m.Path)
	e.Str("Version", m.Version)
	if m.Checksum != "" {
		e.Str("Checksum", m.Checksum)
	}
}
