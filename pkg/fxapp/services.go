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
	"go.uber.org/fx"
	"go.uber.org/multierr"
)

// Services collects the fx options that register services with the app container.
type Services struct {
	options  []fx.Option
	cleanups []func() error
}

// NewServices returns an empty collection
func NewServices() *Services {
	return &Services{}
}

// Provide registers constructors
func (s *Services) Provide(constructors ...interface{}) *Services {
	s.options = append(s.options, fx.Provide(constructors...))
	return s
}

// Supply registers values
func (s *Services) Supply(values ...interface{}) *Services {
	s.options = append(s.options, fx.Supply(values...))
	return s
}

// Replace replaces values that are provided by the app, e.g., the *logcfg.Logger
func (s *Services) Replace(values ...interface{}) *Services {
	s.options = append(s.options, fx.Replace(values...))
	return s
}

// Invoke registers functions that are invoked when the app is built
func (s *Services) Invoke(funcs ...interface{}) *Services {
	s.options = append(s.options, fx.Invoke(funcs...))
	return s
}

// Option registers raw fx options
func (s *Services) Option(opts ...fx.Option) *Services {
	s.options = append(s.options, opts...)
	return s
}

// Len returns the number of registered options
func (s *Services) Len() int {
	return len(s.options)
}

// Options returns the registered options as a single fx.Option
func (s *Services) Options() fx.Option {
	return fx.Options(s.options...)
}

// OnBuildFailure registers functions that release resources acquired while configuring services, e.g., a logger. They
// are run in reverse order if the app fails to build.
func (s *Services) OnBuildFailure(funcs ...func() error) *Services {
	s.cleanups = append(s.cleanups, funcs...)
	return s
}

func (s *Services) cleanup() error {
	var err error
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.cleanups[i]())
	}
	s.cleanups = nil
	return err
}
