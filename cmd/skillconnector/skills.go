// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillconnector/cel"
	"github.com/stacklok/skillconnector/skills"
	"github.com/stacklok/skillconnector/validation/name"
)

func newSkillsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Manage stored skills",
	}
	cmd.AddCommand(
		newSkillsListCmd(a),
		newSkillsGetCmd(a),
		newSkillsPutCmd(a),
		newSkillsDeleteCmd(a),
		newSkillsBuildCmd(a),
	)
	return cmd
}

// skillArgs validates PLUGIN FUNCTION positional arguments.
func skillArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected PLUGIN FUNCTION, got %d arguments", len(args))
	}
	if err := name.Validate("plugin", args[0]); err != nil {
		return err
	}
	return name.Validate("function", args[1])
}

func newSkillsListCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered functions as JSON",
		Long: `Build the registry from storage and list its functions as JSON.

Examples:
  # Everything
  skillconnector skills list

  # Functions of one plugin that declare a description
  skillconnector skills list --filter 'plugin == "Writer" && description != ""'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := cel.NewFunctionFilterEngine()
			if err != nil {
				return err
			}
			var f *cel.Filter
			if filter != "" {
				if f, err = engine.Compile(filter); err != nil {
					return err
				}
			}

			builder, err := a.builder(cmd.Context())
			if err != nil {
				return err
			}
			reg, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}
			infos, err := f.Apply(reg)
			if err != nil {
				return err
			}
			if infos == nil {
				infos = []skills.FunctionInfo{}
			}
			return printJSON(cmd.OutOrStdout(), infos)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "CEL expression over plugin, function, description and inputs")
	return cmd
}

func newSkillsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get PLUGIN FUNCTION",
		Short: "Print a skill's prompt and config as JSON",
		Args:  skillArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.skillService(cmd.Context())
			if err != nil {
				return err
			}
			skill, err := svc.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), skill)
		},
	}
}

func newSkillsPutCmd(a *app) *cobra.Command {
	var promptFile, configFile string
	cmd := &cobra.Command{
		Use:   "put PLUGIN FUNCTION",
		Short: "Store a skill from local files",
		Args:  skillArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := os.ReadFile(promptFile) //#nosec G304 -- operator-supplied path
			if err != nil {
				return fmt.Errorf("reading prompt: %w", err)
			}
			var config []byte
			if configFile != "" {
				if config, err = os.ReadFile(configFile); err != nil { //#nosec G304 -- operator-supplied path
					return fmt.Errorf("reading config: %w", err)
				}
				if _, err := skills.ParseConfig(config); err != nil {
					return &skills.ConfigError{Plugin: args[0], Function: args[1], Err: err}
				}
			}

			svc, err := a.skillService(cmd.Context())
			if err != nil {
				return err
			}
			return svc.Insert(cmd.Context(), args[0], args[1], string(prompt), string(config))
		},
	}
	cmd.Flags().StringVarP(&promptFile, "prompt", "p", "", "prompt template file (skprompt.txt)")
	cmd.Flags().StringVar(&configFile, "config-file", "", "function config file (config.json)")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newSkillsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PLUGIN FUNCTION",
		Short: "Delete a skill",
		Args:  skillArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.skillService(cmd.Context())
			if err != nil {
				return err
			}
			return svc.Delete(cmd.Context(), args[0], args[1])
		},
	}
}

func newSkillsBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Validate the stored skill tree by building a registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			builder, err := a.builder(cmd.Context())
			if err != nil {
				return err
			}
			reg, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]int{
				"plugins":   len(reg.Plugins()),
				"functions": reg.Len(),
			})
		},
	}
}
