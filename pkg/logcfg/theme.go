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
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"strings"
	"time"
)

// Theme defines the console colours
type Theme struct {
	Name       string
	Levels     map[zerolog.Level][]color.Attribute
	Timestamp  []color.Attribute
	Message    []color.Attribute
	FieldName  []color.Attribute
	FieldValue []color.Attribute
	Error      []color.Attribute
}

// Console themes
var (
	// ThemeNone disables colours
	ThemeNone = Theme{Name: "none"}

	// ThemeCode mimics the colours used by code editors
	ThemeCode = Theme{
		Name: "code",
		Levels: map[zerolog.Level][]color.Attribute{
			zerolog.TraceLevel: {color.FgHiBlack},
			zerolog.DebugLevel: {color.FgWhite},
			zerolog.InfoLevel:  {color.FgHiWhite, color.Bold},
			zerolog.WarnLevel:  {color.FgHiYellow, color.Bold},
			zerolog.ErrorLevel: {color.FgHiWhite, color.BgRed, color.Bold},
			zerolog.FatalLevel: {color.FgHiWhite, color.BgRed, color.Bold},
			zerolog.PanicLevel: {color.FgHiWhite, color.BgRed, color.Bold},
		},
		Timestamp:  []color.Attribute{color.FgHiBlack},
		Message:    []color.Attribute{color.FgWhite},
		FieldName:  []color.Attribute{color.FgCyan},
		FieldValue: []color.Attribute{color.FgHiMagenta},
		Error:      []color.Attribute{color.FgHiRed},
	}

	// ThemeLiterate highlights values
	ThemeLiterate = Theme{
		Name: "literate",
		Levels: map[zerolog.Level][]color.Attribute{
			zerolog.TraceLevel: {color.FgHiBlack},
			zerolog.DebugLevel: {color.FgHiBlack},
			zerolog.InfoLevel:  {color.FgHiWhite},
			zerolog.WarnLevel:  {color.FgHiYellow},
			zerolog.ErrorLevel: {color.FgHiWhite, color.BgRed},
			zerolog.FatalLevel: {color.FgHiWhite, color.BgRed},
			zerolog.PanicLevel: {color.FgHiWhite, color.BgRed},
		},
		Timestamp:  []color.Attribute{color.FgHiBlack},
		Message:    []color.Attribute{color.FgHiWhite},
		FieldName:  []color.Attribute{color.FgHiBlack},
		FieldValue: []color.Attribute{color.FgHiCyan},
		Error:      []color.Attribute{color.FgHiRed},
	}

	// ThemeGrayscale uses shades of gray only
	ThemeGrayscale = Theme{
		Name: "grayscale",
		Levels: map[zerolog.Level][]color.Attribute{
			zerolog.TraceLevel: {color.FgHiBlack},
			zerolog.DebugLevel: {color.FgHiBlack},
			zerolog.InfoLevel:  {color.FgWhite},
			zerolog.WarnLevel:  {color.FgHiWhite, color.Bold},
			zerolog.ErrorLevel: {color.FgBlack, color.BgWhite},
			zerolog.FatalLevel: {color.FgBlack, color.BgHiWhite, color.Bold},
			zerolog.PanicLevel: {color.FgBlack, color.BgHiWhite, color.Bold},
		},
		Timestamp:  []color.Attribute{color.FgHiBlack},
		Message:    []color.Attribute{color.FgHiWhite},
		FieldName:  []color.Attribute{color.FgHiBlack},
		FieldValue: []color.Attribute{color.FgWhite},
		Error:      []color.Attribute{color.FgHiWhite, color.Bold},
	}
)

var themes = map[string]Theme{
	ThemeNone.Name:      ThemeNone,
	ThemeCode.Name:      ThemeCode,
	ThemeLiterate.Name:  ThemeLiterate,
	ThemeGrayscale.Name: ThemeGrayscale,
}

// ThemeByName looks up a theme by name, case-insensitive. An empty name returns ThemeCode.
func ThemeByName(name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ThemeCode, nil
	}
	if theme, ok := themes[name]; ok {
		return theme, nil
	}
	return ThemeNone, errors.Errorf("unknown console theme: %q", name)
}

type palette struct {
	levels     map[zerolog.Level]*color.Color
	timestamp  *color.Color
	message    *color.Color
	fieldName  *color.Color
	fieldValue *color.Color
	error      *color.Color
}

func (t Theme) palette(colored bool) *palette {
	newColor := func(attrs []color.Attribute) *color.Color {
		if !colored || len(attrs) == 0 {
			return nil
		}
		c := color.New(attrs...)
		c.EnableColor()
		return c
	}
	p := &palette{
		levels:     make(map[zerolog.Level]*color.Color, len(t.Levels)),
		timestamp:  newColor(t.Timestamp),
		message:    newColor(t.Message),
		fieldName:  newColor(t.FieldName),
		fieldValue: newColor(t.FieldValue),
		error:      newColor(t.Error),
	}
	for level, attrs := range t.Levels {
		p.levels[level] = newColor(attrs)
	}
	return p
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// apply formats the ConsoleWriter output as `[15:04:05 INF] message key=value`
func (t Theme) apply(w *zerolog.ConsoleWriter, colored bool) {
	p := t.palette(colored)
	w.NoColor = !colored
	w.PartsOrder = []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName}
	w.FormatTimestamp = func(i interface{}) string {
		return "[" + paint(p.timestamp, consoleTime(i))
	}
	w.FormatLevel = func(i interface{}) string {
		s, ok := i.(string)
		if !ok {
			// events without a level, e.g., standard library log lines
			return "   ]"
		}
		level, e := ParseLevel(s)
		if e != nil {
			return "???]"
		}
		return paint(p.levels[level], levelAbbreviation(level)) + "]"
	}
	w.FormatMessage = func(i interface{}) string {
		if i == nil {
			return ""
		}
		return paint(p.message, fmt.Sprint(i))
	}
	w.FormatFieldName = func(i interface{}) string {
		return paint(p.fieldName, fmt.Sprintf("%s=", i))
	}
	w.FormatFieldValue = func(i interface{}) string {
		return paint(p.fieldValue, fmt.Sprintf("%v", i))
	}
	w.FormatErrFieldName = func(i interface{}) string {
		return paint(p.error, fmt.Sprintf("%s=", i))
	}
	w.FormatErrFieldValue = func(i interface{}) string {
		return paint(p.error, fmt.Sprintf("%v", i))
	}
}

func consoleTime(i interface{}) string {
	s, ok := i.(string)
	if !ok {
		return fmt.Sprint(i)
	}
	t, e := time.Parse(zerolog.TimeFieldFormat, s)
	if e != nil {
		return s
	}
	return t.Local().Format("15:04:05")
}
