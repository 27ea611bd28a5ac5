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
	"fmt"
	"github.com/Masterminds/semver"
	"github.com/kelseyhightower/envconfig"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"go.uber.org/multierr"
	"regexp"
	"strings"
)

// EnvconfigPrefix is the env var prefix for app settings
const EnvconfigPrefix = logcfg.EnvPrefix

var (
	// name constraints:
	// - must be alpha-numeric and can contain the following non-alpha-numeric chars: '_' '-' '.'
	// - must start with an alpha
	// - min len = 3, max len = 50
	nameRegex = regexp.MustCompile(`^[[:alpha:]][a-zA-Z0-9_.-]{2,49}$`)
)

// Desc represents the application descriptor
type Desc interface {
	// Name returns the app name, which is logged as the ApplicationName
	Name() string

	// Version returns the app version
	Version() *semver.Version

	// Validates checks if the app descriptor is valid
	Validate() error

	fmt.Stringer
}

// DescBuilder constructs a new Desc
type DescBuilder interface {
	SetName(name string) DescBuilder
	SetVersion(version *semver.Version) DescBuilder

	Build() (Desc, error)
}

// NewDescBuilder constructs a new DescBuilder
func NewDescBuilder() DescBuilder {
	return &desc{}
}

type desc struct {
	name    string
	version *semver.Version
}

func (d *desc) String() string {
	return fmt.Sprintf("Desc{Name: %s, Version: %v}", d.name, d.version)
}

func (d *desc) Build() (Desc, error) {
	return d, d.Validate()
}

func (d *desc) Validate() error {
	var err error
	d.name = strings.TrimSpace(d.name)
	if !nameRegex.MatchString(d.name) {
		err = multierr.Append(err, fmt.Errorf("`Name` failed to match against regex: %q : %q", nameRegex, d.name))
	}
	if d.version == nil {
		err = multierr.Append(err, errors.New("`Version` is required"))
	}
	return err
}

func (d *desc) Name() string {
	return d.name
}

func (d *desc) SetName(name string) DescBuilder {
	d.name = name
	return d
}

func (d *desc) Version() *semver.Version {
	return d.version
}

func (d *desc) SetVersion(version *semver.Version) DescBuilder {
	d.version = version
	return d
}

type envconfigDesc struct {
	Name    string `required:"true"`
	Version string `required:"true"`
}

// LoadDescFromEnv tries to load the app descriptor from env vars:
//
//   - APP12X_NAME
//   - APP12X_VERSION
func LoadDescFromEnv() (Desc, error) {
	var cfg envconfigDesc
	err := envconfig.Process(EnvconfigPrefix, &cfg)
	if err != nil {
		return nil, err
	}

	version, err := semver.NewVersion(cfg.Version)
	if err != nil {
		return nil, err
	}

	return NewDescBuilder().
		SetName(cfg.Name).
		SetVersion(version).
		Build()
}

// AppName returns the app name, falling back to the executable name if the descriptor is nil
func AppName(desc Desc) string {
	if desc == nil || desc.Name() == "" {
		return logcfg.FriendlyName()
	}
	return desc.Name()
}
