// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillconnector/config"
	"github.com/stacklok/skillconnector/env"
	"github.com/stacklok/skillconnector/logging"
)

func newRootCmd() *cobra.Command {
	a := &app{}
	var cfgFile string

	root := &cobra.Command{
		Use:           "skillconnector",
		Short:         "Serve and manage prompt skills and corpus search",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, &env.OSReader{})
			if err != nil {
				return err
			}
			a.init(cfg, logging.New(cfg.Log.Options(cmd.ErrOrStderr())...))
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: $XDG_CONFIG_HOME/skillconnector/config.yaml)")

	root.AddCommand(
		newServeCmd(a),
		newMCPCmd(a),
		newSkillsCmd(a),
		newCorpusCmd(a),
		newBundleCmd(a),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
