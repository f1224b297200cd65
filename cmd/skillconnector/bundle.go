// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillconnector/oci/bundle"
)

func newBundleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Package skills as OCI artifacts",
		Long: `Export the skills container into a local OCI layout, import bundles
back into it, and move bundles to and from OCI registries.

Examples:
  skillconnector bundle export v1
  skillconnector bundle push v1 ghcr.io/acme/skills:v1
  skillconnector bundle pull ghcr.io/acme/skills:v1 --import`,
	}
	cmd.AddCommand(
		newBundleExportCmd(a),
		newBundleImportCmd(a),
		newBundlePushCmd(a),
		newBundlePullCmd(a),
		newBundleTagsCmd(a),
	)
	return cmd
}

func newBundleExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export TAG",
		Short: "Export every stored skill into a bundle tagged TAG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.bundleStore()
			if err != nil {
				return err
			}
			src, err := a.skillStore(cmd.Context())
			if err != nil {
				return err
			}
			res, err := bundle.NewExporter(store, bundle.WithExportLogger(a.logger)).Export(cmd.Context(), src, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"tag":       res.Tag,
				"digest":    res.Manifest.Digest.String(),
				"plugins":   res.Config.Plugins,
				"functions": res.Config.Functions,
			})
		},
	}
}

func importBundle(cmd *cobra.Command, a *app, store *bundle.Store, tag string) error {
	dst, err := a.skillStore(cmd.Context())
	if err != nil {
		return err
	}
	n, err := bundle.NewImporter(bundle.WithImportLogger(a.logger)).Import(cmd.Context(), store, tag, dst)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d skills from %s\n", n, tag)
	return err
}

func newBundleImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import TAG",
		Short: "Write the skills of a local bundle into the skills container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.bundleStore()
			if err != nil {
				return err
			}
			return importBundle(cmd, a, store, args[0])
		},
	}
}

func remoteFor(a *app) (*bundle.Remote, error) {
	return bundle.NewRemote(bundle.WithPlainHTTP(a.cfg.Bundles.PlainHTTP))
}

func newBundlePushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push TAG REF",
		Short: "Push a local bundle to an OCI registry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.bundleStore()
			if err != nil {
				return err
			}
			remote, err := remoteFor(a)
			if err != nil {
				return err
			}
			if err := remote.Push(cmd.Context(), store, args[0], args[1]); err != nil {
				return err
			}
			a.logger.Info("pushed bundle", "tag", args[0], "ref", args[1])
			return nil
		},
	}
}

func newBundlePullCmd(a *app) *cobra.Command {
	var doImport bool
	cmd := &cobra.Command{
		Use:   "pull REF",
		Short: "Pull a bundle from an OCI registry into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.bundleStore()
			if err != nil {
				return err
			}
			remote, err := remoteFor(a)
			if err != nil {
				return err
			}
			dgst, err := remote.Pull(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "pulled %s@%s\n", args[0], dgst); err != nil {
				return err
			}
			if doImport {
				return importBundle(cmd, a, store, args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&doImport, "import", false, "import the pulled skills into the skills container")
	return cmd
}

func newBundleTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags in the local bundle store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.bundleStore()
			if err != nil {
				return err
			}
			tags, err := store.Tags(cmd.Context())
			if err != nil {
				return err
			}
			if tags == nil {
				tags = []string{}
			}
			return printJSON(cmd.OutOrStdout(), tags)
		},
	}
}
