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

package err

import (
	"errors"
	"fmt"
	"github.com/oklog/ulid"
	"github.com/oysterpack/fxlog/pkg/ulids"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	newULID = ulids.MonotonicULIDGenerator()
)

// Err is used to define application errors - linking the error to a source code location
type Err struct {
	*Desc
	SrcID ulid.ULID
}

// New constructs a new Err
//   - panics if `srcULID` is not a valid ULID
func New(desc *Desc, srcULID string) *Err {
	return &Err{
		Desc:  desc,
		SrcID: ulid.MustParse(srcULID),
	}
}

// New constructs a new error instance, which is assigned a unique InstanceID.
func (e *Err) New() *Instance {
	return &Instance{
		Err:        e,
		InstanceID: newULID(),
	}
}

// CausedBy constructs a new error instance which wraps the error cause
func (e *Err) CausedBy(cause error) *Instance {
	return &Instance{
		Err:        e,
		InstanceID: newULID(),
		Cause:      cause,
	}
}

// Desc is used to define an error
type Desc struct {
	ID ulid.ULID
	// Name is the user friendly error name - this should be unique within the application scope
	Name    string
	Message string
	// Tags are used to classify errors, e.g., client, io, config.
	Tags []string
	// IncludeStack indicates whether the stacktrace should be logged with the error
	IncludeStack bool
}

// NewDesc constructs a new Desc
//   - panics if `id` is not a valid ULID
func NewDesc(id, name, message string, tags ...Tag) *Desc {
	var tagSlice []string
	if len(tags) > 0 {
		tagSlice = make([]string, len(tags))
		for i, tag := range tags {
			tagSlice[i] = tag.String()
		}
	}
	return &Desc{
		ID:      ulid.MustParse(id),
		Name:    name,
		Message: message,
		Tags:    tagSlice,
	}
}

// WithStacktrace marks the Desc to include the stacktrace when instances are logged
func (d *Desc) WithStacktrace() *Desc {
	d.IncludeStack = true
	return d
}

// Tag is used to define tags as constants in a type safe manner
type Tag string

func (t Tag) String() string {
	return string(t)
}

// Common error tags
const (
	// ClientErr means the error was caused by the caller, e.g., a required argument was not supplied
	ClientErr Tag = "client"
	// ServerErr means the error was caused by an unexpected failure within the app
	ServerErr Tag = "server"
	// ConfigErr indicates the error was caused by invalid configuration
	ConfigErr Tag = "config"
	// IOErr indicates some type of IO related error has occurred
	IOErr Tag = "io"
)

// Instance represents an application error instance.
type Instance struct {
	*Err
	// InstanceID is the unique error instance ID.
	InstanceID ulid.ULID
	// Cause if present, indicates what caused this error.
	Cause error
}

// Error implements the Error interface
func (e *Instance) Error() string {
	if e.Cause == nil {
		return e.Err.Message
	}
	return fmt.Sprintf("%s : %s", e.Err.Message, e.Cause.Error())
}

// Unwrap returns the error cause
func (e *Instance) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an Instance created from the same Err source location
func (e *Instance) Is(target error) bool {
	t, ok := target.(*Instance)
	if !ok {
		return false
	}
	return t.Err == e.Err
}

// MarshalZerologObject implements the zerolog.LogObjectMarshaler interface
func (e *Instance) MarshalZerologObject(event *zerolog.Event) {
	event.
		Str("Id", e.ID.String()).
		Str("Name", e.Name).
		Str("SrcId", e.SrcID.String()).
		Str("InstanceId", e.InstanceID.String())
	if len(e.Tags) > 0 {
		event.Strs("Tags", e.Tags)
	}
}

// Log logs the error using the specified logger
func (e *Instance) Log(logger *zerolog.Logger) *zerolog.Event {
	event := logger.Error().Object("Err", e)
	if e.IncludeStack {
		return event.Stack().Err(pkgerrors.WithStack(e))
	}
	return event.Err(e)
}

// As finds the first error in the chain that is an Instance of the specified Desc
func As(e error, desc *Desc) (*Instance, bool) {
	for e != nil {
		var instance *Instance
		if !errors.As(e, &instance) {
			return nil, false
		}
		if instance.Desc == desc {
			return instance, true
		}
		e = instance.Cause
	}
	return nil, false
}
