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

package fxlog

import (
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"github.com/oysterpack/fxlog/pkg/guard"
	"github.com/oysterpack/fxlog/pkg/logcfg"
)

// DefaultFileName returns the default log file path, i.e., "<executable name>-.log". The file rolls daily, and the date
// is inserted before the extension.
func DefaultFileName() string {
	return logcfg.FriendlyName() + "-.log"
}

// defaultSinks are used when no configuration section is available
func defaultSinks() []logcfg.Sink {
	return []logcfg.Sink{
		logcfg.Console(logcfg.ThemeCode),
		logcfg.RollingFile(DefaultFileName(), logcfg.Day),
	}
}

// AddLogging configures the app logger.
//
// If the app configuration contains a "Zerolog" section, then the logger is configured from it. Otherwise the logger
// writes to the console using the Code theme, and to a daily rolling compact JSON file (see DefaultFileName).
func AddLogging(b fxapp.AppBuilder) (fxapp.AppBuilder, error) {
	if err := guard.NotNil(b, "builder"); err != nil {
		return nil, err
	}

	b.UseLogging(func(ctx fxapp.HostContext, config *logcfg.Configuration) error {
		if logcfg.HasSection(ctx.Config, logcfg.DefaultSectionName) {
			config.ReadFrom(logcfg.Sub(ctx.Config, logcfg.DefaultSectionName))
		} else {
			config.WriteTo(defaultSinks()...)
		}
		config.
			Enrich(
				logcfg.WithExceptionDetails(),
				logcfg.FromLogContext(),
				logcfg.WithApplicationName(ctx.AppName()),
				logcfg.WithMachineName(),
				logcfg.WithEnvironment(ctx.Environment),
			).
			Enrich(debugEnrichers()...)
		return config.Err()
	})
	return b, nil
}

// AddLoggingSection configures the app logger from the named configuration section, e.g., "Services:Logging:Zerolog".
// The logger always writes to the console using the Code theme. A missing section is not an error.
func AddLoggingSection(b fxapp.AppBuilder, sectionName string) (fxapp.AppBuilder, error) {
	if err := guard.First(guard.NotNil(b, "builder"), guard.NotEmpty(sectionName, "sectionName")); err != nil {
		return nil, err
	}

	b.UseLogging(func(ctx fxapp.HostContext, config *logcfg.Configuration) error {
		config.
			ReadFrom(logcfg.Sub(ctx.Config, sectionName)).
			Enrich(
				logcfg.WithExceptionDetails(),
				logcfg.FromLogContext(),
				logcfg.WithApplicationName(ctx.AppName()),
				logcfg.WithEnvironment(ctx.Environment),
			).
			Enrich(debugEnrichers()...).
			WriteTo(logcfg.Console(logcfg.ThemeCode))
		return config.Err()
	})
	return b, nil
}
