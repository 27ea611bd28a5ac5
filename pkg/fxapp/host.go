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
	"github.com/kelseyhightower/envconfig"
	"github.com/oklog/ulid"
	"github.com/oysterpack/fxlog/pkg/ulids"
	"github.com/spf13/viper"
	"strings"
)

// InstanceID corresponds to an application instance
type InstanceID ulid.ULID

// NewInstanceID returns a new unique InstanceID
func NewInstanceID() InstanceID {
	return InstanceID(ulids.MustNew())
}

// ULID returns the InstanceID's underlying ULID
func (id InstanceID) ULID() ulid.ULID {
	return ulid.ULID(id)
}

func (id InstanceID) String() string {
	return id.ULID().String()
}

// standard environment names
const (
	Development = "Development"
	Staging     = "Staging"
	Production  = "Production"
)

type envconfigEnvironment struct {
	Environment string `default:"Production"`
}

// LoadEnvironment loads the environment name from the APP12X_ENVIRONMENT env var. It defaults to Production.
func LoadEnvironment() (string, error) {
	var cfg envconfigEnvironment
	if err := envconfig.Process(EnvconfigPrefix, &cfg); err != nil {
		return "", err
	}
	if env := strings.TrimSpace(cfg.Environment); env != "" {
		return env, nil
	}
	return Production, nil
}

// HostContext is the context the app is being built in. It is passed to logging and service configurers, and is
// available for dependency injection.
type HostContext struct {
	Desc        Desc
	InstanceID  InstanceID
	Environment string
	// Config is never nil
	Config *viper.Viper
}

// AppName returns the app descriptor name, or the executable name if no descriptor was specified
func (c HostContext) AppName() string {
	return AppName(c.Desc)
}

// IsDevelopment returns true if the environment is Development
func (c HostContext) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, Development)
}
