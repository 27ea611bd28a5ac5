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

// logcheck validates a logging configuration section, and writes a test event at each level through the configured
// sinks.
//
// Usage:
//
//	logcheck --config config.yaml [--section Zerolog] [--dry-run]
package main

import (
	"fmt"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"os"
)

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand(out io.Writer) *cobra.Command {
	var configFile, sectionName string
	var dryRun bool
	cmd := &cobra.Command{
		Use:          "logcheck",
		Short:        "validates a logging configuration section",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := viper.New()
			config.SetConfigFile(configFile)
			if err := config.ReadInConfig(); err != nil {
				return err
			}
			return check(out, config, sectionName, dryRun)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "config.yaml", "configuration file")
	cmd.Flags().StringVar(&sectionName, "section", logcfg.DefaultSectionName, "section path, e.g., Services:Logging:Zerolog")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the section and resolve the sink and enricher names without opening the sinks")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func check(out io.Writer, config *viper.Viper, sectionName string, dryRun bool) error {
	if !logcfg.HasSection(config, sectionName) {
		return fmt.Errorf("section not found: %q", sectionName)
	}
	section := logcfg.Sub(config, sectionName)
	decoded, err := logcfg.ValidateSection(section)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "section %q: MinimumLevel=%s Overrides=%d Sinks=%d Enrichers=%d Properties=%d\n",
		sectionName,
		decoded.MinimumLevel.Default,
		len(decoded.MinimumLevel.Override),
		len(decoded.WriteTo),
		len(decoded.Enrich),
		len(decoded.Properties),
	)
	if dryRun {
		return nil
	}

	logger, err := logcfg.New().ReadFrom(section).Enrich(logcfg.WithEventID()).CreateLogger()
	if err != nil {
		return err
	}
	log := logger.ForContext("logcheck")
	for _, level := range []zerolog.Level{zerolog.TraceLevel, zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel} {
		log.WithLevel(level).Msgf("%s test event", logcfg.LevelName(level))
	}
	return logger.Close()
}
