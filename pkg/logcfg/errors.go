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
	"github.com/oysterpack/fxlog/pkg/err"
)

// logcfg errors
var (
	ConfigurationErrClass = err.NewDesc("01F8ZA1K6M3T9Q5W2X7B4C8D0E", "LogConfigurationErr", "invalid logger configuration", err.ConfigErr)
	SinkErrClass          = err.NewDesc("01F8ZA2R4N7V1S5G9H3J6K0M8P", "LogSinkErr", "failed to open log sink", err.IOErr)

	InvalidConfigurationErr = err.New(ConfigurationErrClass, "01F8ZA3B5C8D2E6F0G4H7J1K9M")
	SectionDecodeErr        = err.New(ConfigurationErrClass, "01F8ZA3X9Y2Z5A8B1C4D7E0F3G")
	UnknownSinkErr          = err.New(ConfigurationErrClass, "01F8ZA4H6J9K2M5N8P1Q4R7S0T")
	UnknownEnricherErr      = err.New(ConfigurationErrClass, "01F8ZA4V3W6X9Y2Z5A8B1C4D7E")
	SinkOpenErr             = err.New(SinkErrClass, "01F8ZA5F0G3H6J9K2M5N8P1Q4R")
)
