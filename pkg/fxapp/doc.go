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
Package fxapp builds upon https://godoc.org/go.uber.org/fx to provide a standardized functional driven application container.

The app is assembled by an AppBuilder:

  - the HostContext is created first: the app descriptor, instance ID, environment name, and configuration
  - the app logger is created from the logging configurers (see UseLogging), and made the process-wide logger
  - the services configurers register services with the app container (see ConfigureServices)
  - the fx app is built, providing the logger as *logcfg.Logger, *zerolog.Logger, logcfg.LoggerFactory, and *zap.Logger

Services may replace the app logger via Services.Replace, which also replaces the loggers derived from it.

App lifecycle events are logged using the "fxapp" SourceContext, and are typed via an EventTypeID.
*/
package fxapp
