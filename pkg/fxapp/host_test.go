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

package fxapp_test

import (
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"testing"
)

func TestLoadEnvironment(t *testing.T) {
	unsetenv(t, "ENVIRONMENT")
	defer unsetenv(t, "ENVIRONMENT")

	env, err := fxapp.LoadEnvironment()
	switch {
	case err != nil:
		t.Errorf("*** failed to load environment: %v", err)
	case env != fxapp.Production:
		t.Errorf("*** environment should default to Production: %q", env)
	}

	setenv(t, "ENVIRONMENT", fxapp.Development)
	env, err = fxapp.LoadEnvironment()
	switch {
	case err != nil:
		t.Errorf("*** failed to load environment: %v", err)
	case env != fxapp.Development:
		t.Errorf("*** environment was not loaded from the env var: %q", env)
	}
}

func TestHostContext(t *testing.T) {
	ctx := fxapp.HostContext{
		InstanceID:  fxapp.NewInstanceID(),
		Environment: "development",
	}
	if !ctx.IsDevelopment() {
		t.Error("*** environment names should be matched case insensitively")
	}
	if ctx.AppName() == "" {
		t.Error("*** app name should default to the executable name")
	}
	if ctx.InstanceID.String() != ctx.InstanceID.ULID().String() {
		t.Error("*** InstanceID string should be the ULID string")
	}
	if fxapp.NewInstanceID() == ctx.InstanceID {
		t.Error("*** instance IDs should be unique")
	}
}
