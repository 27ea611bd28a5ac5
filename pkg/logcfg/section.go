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
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// DefaultSectionName is the configuration section used when none is specified
const DefaultSectionName = "Zerolog"

// Section is the configuration section schema
type Section struct {
	MinimumLevel MinimumLevelSection
	WriteTo      []SinkSection `validate:"dive"`
	Enrich       []string      `validate:"dive,required"`
	// Properties is either a map, whose names are lower cased by viper, or a list of {Name, Value} pairs, whose names
	// keep their case
	Properties map[string]interface{}
}

// MinimumLevelSection is either specified as a plain level string, which sets the Default, or as a map
type MinimumLevelSection struct {
	Default  string            `validate:"omitempty,loglevel"`
	Override map[string]string `validate:"dive,loglevel"`
}

// SinkSection names a registered sink and the args used to create it
type SinkSection struct {
	Name string `validate:"required"`
	Args map[string]interface{}
}

// SectionKey converts a ':' separated section path, e.g., "Services:Logging:Zerolog", into a viper key path
func SectionKey(path string) string {
	return strings.ReplaceAll(strings.TrimSpace(path), ":", ".")
}

// Sub returns the section at the path, or nil if v is nil or the section does not exist
func Sub(v *viper.Viper, path string) *viper.Viper {
	if v == nil {
		return nil
	}
	return v.Sub(SectionKey(path))
}

// HasSection returns true if the section exists and has at least one setting
func HasSection(v *viper.Viper, path string) bool {
	section := Sub(v, path)
	return section != nil && len(section.AllKeys()) > 0
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// the registration only fails for an empty tag or a nil func
		_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			_, e := ParseLevel(fl.Field().String())
			return e == nil
		})
	})
	return validate
}

var minimumLevelSectionType = reflect.TypeOf(MinimumLevelSection{})

func minimumLevelHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to == minimumLevelSectionType && from.Kind() == reflect.String {
		return map[string]interface{}{"Default": data}, nil
	}
	return data, nil
}

var propertiesType = reflect.TypeOf(map[string]interface{}{})

// propertyListHook converts a list of {Name, Value} pairs into a map. The name and value keys are matched ignoring case.
func propertyListHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != propertiesType || from.Kind() != reflect.Slice {
		return data, nil
	}
	items, ok := data.([]interface{})
	if !ok {
		return data, nil
	}
	properties := make(map[string]interface{}, len(items))
	for _, item := range items {
		var name string
		var value interface{}
		iter := reflect.ValueOf(item)
		if iter.Kind() != reflect.Map {
			return nil, errors.Errorf("property must be a {Name, Value} pair: %v", item)
		}
		for _, key := range iter.MapKeys() {
			k, _ := key.Interface().(string)
			switch strings.ToLower(k) {
			case "name":
				name, _ = iter.MapIndex(key).Interface().(string)
			case "value":
				value = iter.MapIndex(key).Interface()
			}
		}
		if strings.TrimSpace(name) == "" {
			return nil, errors.Errorf("property name is required: %v", item)
		}
		properties[name] = value
	}
	return properties, nil
}

func decode(input interface{}, result interface{}) error {
	decoder, e := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			minimumLevelHook,
			propertyListHook,
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           result,
	})
	if e != nil {
		return e
	}
	return decoder.Decode(input)
}

// DecodeSection decodes and validates the section.
//
// The top level keys are read individually, because viper would otherwise split map keys that contain dots, e.g., the
// override source "github.com/labstack".
func DecodeSection(v *viper.Viper) (*Section, error) {
	raw := map[string]interface{}{
		"MinimumLevel": v.Get("minimumlevel"),
		"WriteTo":      v.Get("writeto"),
		"Enrich":       v.Get("enrich"),
		"Properties":   v.Get("properties"),
	}
	var section Section
	if e := decode(raw, &section); e != nil {
		return nil, SectionDecodeErr.CausedBy(e)
	}
	if e := getValidator().Struct(&section); e != nil {
		return nil, InvalidConfigurationErr.CausedBy(e)
	}
	return &section, nil
}

// ValidateSection decodes and validates the section, and resolves the sink and enricher names. The sinks are created,
// but not opened.
func ValidateSection(v *viper.Viper) (*Section, error) {
	section, e := DecodeSection(v)
	if e != nil {
		return nil, e
	}
	if _, _, e := section.resolve(); e != nil {
		return nil, e
	}
	return section, nil
}

// resolve creates the registered sinks and enrichers. Names that fail to resolve are skipped and their errors returned.
func (s *Section) resolve() ([]Sink, []Enricher, error) {
	var errs error
	sinks := make([]Sink, 0, len(s.WriteTo))
	for _, sinkSection := range s.WriteTo {
		sink, e := newSink(sinkSection.Name, sinkSection.Args)
		if e != nil {
			errs = multierr.Append(errs, e)
			continue
		}
		sinks = append(sinks, sink)
	}
	enrichers := make([]Enricher, 0, len(s.Enrich))
	for _, name := range s.Enrich {
		enricher, e := newEnricher(name)
		if e != nil {
			errs = multierr.Append(errs, e)
			continue
		}
		enrichers = append(enrichers, enricher)
	}
	return sinks, enrichers, errs
}

func readSection(c *Configuration, v *viper.Viper) error {
	section, e := DecodeSection(v)
	if e != nil {
		return e
	}

	// validated
	if section.MinimumLevel.Default != "" {
		level, _ := ParseLevel(section.MinimumLevel.Default)
		c.MinimumLevel(level)
	}
	for source, levelName := range section.MinimumLevel.Override {
		level, _ := ParseLevel(levelName)
		c.Override(source, level)
	}

	sinks, enrichers, errs := section.resolve()
	c.WriteTo(sinks...)
	c.Enrich(enrichers...)

	names := make([]string, 0, len(section.Properties))
	for name := range section.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.Enrich(WithProperty(name, section.Properties[name]))
	}
	return errs
}
