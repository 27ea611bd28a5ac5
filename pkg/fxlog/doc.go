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
Package fxlog wires zerolog into fxapp apps using a standard logging setup.

Host builder:

	builder, err := fxlog.AddLogging(fxapp.NewBuilder(desc))

reads the "Zerolog" configuration section when present, and otherwise writes to the console and to a daily rolling
compact JSON file named after the executable. Every event is enriched with the ApplicationName, MachineName and
Environment, plus error stacks and log context properties. Builds using the "debug" build tag also log whether a
debugger is attached.

Request logging is available for echo, fiber and the app HTTP server, see UseRequestLogging, UseFiberRequestLogging
and UseHTTPRequestLogging.

Every function checks its arguments before doing any work. Nil or blank arguments are reported as guard argument
errors, otherwise the argument is returned to allow chaining.
*/
package fxlog
