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

/*
Package logcfg composes zerolog loggers from enrichers and sinks.

A Configuration is built up by chaining calls, either in code or by reading a configuration section, and then turned
into a Logger:

	logger, err := logcfg.New().
		MinimumLevel(zerolog.InfoLevel).
		Override("github.com/labstack", zerolog.WarnLevel).
		Enrich(logcfg.FromLogContext(), logcfg.WithMachineName()).
		WriteTo(logcfg.Console(logcfg.ThemeCode), logcfg.File("logs/app-.log")).
		CreateLogger()

Log events are written using the compact JSON event layout:

	{"@l":"Information","ApplicationName":"quickstart","MachineName":"host-1","@t":"2026-10-19T10:00:00.123Z","@m":"started"}

	@t  = timestamp (RFC3339 with nanoseconds)
	@l  = level, using the names Verbose, Debug, Information, Warning, Error, Fatal
	@m  = message
	@x  = error
	@xs = error stack

The field names are applied globally when the package is initialized.

Configuration sections

A section is read from a *viper.Viper. The schema is:

	Zerolog:
	  MinimumLevel:
	    Default: Information
	    Override:
	      github.com/labstack: Warning
	  WriteTo:
	    - Name: Console
	      Args:
	        theme: code
	    - Name: File
	      Args:
	        path: logs/app-.log
	        rollingInterval: Day
	  Enrich: [FromLogContext, WithMachineName]
	  Properties:
	    Team: platform

MinimumLevel can also be specified as a plain level string. Viper treats keys as case-insensitive, thus override
sources and property names are lower cased.
*/
package logcfg
