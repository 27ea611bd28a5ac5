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
	"context"
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"github.com/oysterpack/fxlog/pkg/guard"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// AddLoggingStrategies creates the logger from the configuration and registers it with the services, replacing the app
// logger, i.e., *logcfg.Logger, *zerolog.Logger, logcfg.LoggerFactory and *zap.Logger all resolve to it.
//
// The "Zerolog" child section is used if present, otherwise config itself is treated as the section. When the section is
// empty, the logger writes to the console and to the default rolling file (see DefaultFileName).
//
// The logger is made the process-wide logger immediately, and is closed when the app is stopped. If the app fails to
// build, the logger is closed and the previous process-wide logger is restored by the app builder.
func AddLoggingStrategies(s *fxapp.Services, config *viper.Viper) (*fxapp.Services, error) {
	if err := guard.First(guard.NotNil(s, "services"), guard.NotNil(config, "config")); err != nil {
		return nil, err
	}

	section := config
	if logcfg.HasSection(config, logcfg.DefaultSectionName) {
		section = logcfg.Sub(config, logcfg.DefaultSectionName)
	}

	loggerConfig := logcfg.New()
	if len(section.AllKeys()) > 0 {
		loggerConfig.ReadFrom(section)
	} else {
		loggerConfig.
			Enrich(logcfg.WithExceptionDetails(), logcfg.FromLogContext()).
			WriteTo(defaultSinks()...)
	}
	loggerConfig.
		Enrich(
			logcfg.WithApplicationName(logcfg.FriendlyName()),
			logcfg.WithMachineName(),
		).
		Enrich(debugEnrichers()...)

	logger, err := loggerConfig.CreateLogger()
	if err != nil {
		return nil, err
	}
	logger.SetGlobal()

	s.
		Replace(logger).
		OnBuildFailure(logger.Close).
		Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					return logger.Close()
				},
			})
		})
	return s, nil
}
