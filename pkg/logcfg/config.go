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
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// EnvPrefix is used as the environment variable name prefix to load configs from the env.
// "APP12X" was chosen to represent 12-factor apps.
const EnvPrefix = "APP12X"

// Config is used to load global log settings from env vars:
//
//   - APP12X_LOG_GLOBAL_LEVEL
//   - APP12X_LOG_DISABLE_SAMPLING
type Config struct {
	// GlobalLevel specifies the global log level.
	// It defaults to trace, which leaves filtering to the configured minimum levels.
	GlobalLevel     Level `default:"trace" envconfig:"log_global_level"`
	DisableSampling bool  `envconfig:"log_disable_sampling"`
}

// LoadConfig loads the Config from the env
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Apply will apply the zerolog global settings
func (c *Config) Apply() {
	zerolog.SetGlobalLevel(zerolog.Level(c.GlobalLevel))
	zerolog.DisableSampling(c.DisableSampling)
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{GlobalLevel=%s, DisableSampling=%v}", c.GlobalLevel, c.DisableSampling)
}

// Level is a type alias for zerolog.Level in order to be able to implement the `envconfig.Decoder` interface on it
type Level zerolog.Level

// Decode implements `envconfig.Decoder` interface
func (l *Level) Decode(value string) error {
	level, err := ParseLevel(value)
	if err != nil {
		return err
	}
	*l = Level(level)
	return nil
}

func (l Level) String() string {
	return LevelName(zerolog.Level(l))
}

// UseAsStandardLoggerOutput uses the specified logger as the go std log output.
func UseAsStandardLoggerOutput(logger *zerolog.Logger) {
	log.SetFlags(0)
	log.SetOutput(logger)
}

// FriendlyName returns the executable name without its extension
func FriendlyName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}
