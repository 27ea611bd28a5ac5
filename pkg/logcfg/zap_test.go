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

package logcfg_test

import (
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"go.uber.org/zap"
	"testing"
)

func TestNewZapCore(t *testing.T) {
	logger, buf := newBufferedLogger(t, logcfg.New())

	zapLogger := logger.Zap().Named("github.com/acme/db").With(zap.String("db", "orders"))
	zapLogger.Debug("filtered")
	zapLogger.Info("connected", zap.Int("pool", 4))
	zapLogger.Warn("slow query")

	events := decodeLogEvents(t, buf)
	if len(events) != 2 {
		t.Fatalf("*** expected 2 events: %v", events)
	}
	event := events[0]
	if event.Str(logcfg.MessageField) != "connected" || event.Str(logcfg.LevelField) != "Information" {
		t.Errorf("*** event did not match: %v", event)
	}
	if event.Str(logcfg.SourceContextProperty) != "github.com/acme/db" {
		t.Errorf("*** logger name should be logged as the SourceContext: %v", event)
	}
	if event.Str("db") != "orders" || event["pool"] != float64(4) {
		t.Errorf("*** fields did not match: %v", event)
	}
	if events[1].Str(logcfg.LevelField) != "Warning" {
		t.Errorf("*** warn level did not match: %v", events[1])
	}
}
