// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package bundle exports the skill tree of a storage container as an OCI
artifact and imports it back.

A bundle is a single-layer OCI manifest with artifact type
dev.skillconnector.bundle.v1. The layer is a reproducible tar.gz holding the
plugin/function/skprompt.txt and plugin/function/config.json objects of every
valid function. The config blob lists the plugins and functions it contains.

# Local store

Bundles are kept in an OCI Image Layout on disk, by default under
$XDG_DATA_HOME/skillconnector/bundles:

	store, err := bundle.NewStore(bundle.DefaultStoreRoot())
	res, err := bundle.NewExporter(store).Export(ctx, container, "v1")
	n, err := bundle.NewImporter().Import(ctx, store, "v1", other)

# Registries

Remote copies a tagged bundle between the local store and an OCI registry,
authenticating with the Docker credential store:

	remote, err := bundle.NewRemote()
	err = remote.Push(ctx, store, "v1", "ghcr.io/acme/skills:v1")
	d, err := remote.Pull(ctx, store, "ghcr.io/acme/skills:v1")

Pulled content is size- and digest-checked before it reaches the local store.
*/
package bundle
