// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads the skillconnector configuration.

Values are layered: built-in defaults, then the YAML file, then environment
variables. The result is validated as a whole and every problem is reported
in one error.

	cfg, err := config.Load(path, &env.OSReader{})

Without an explicit path the file is read from
$XDG_CONFIG_HOME/skillconnector/config.yaml when it exists.

# File format

	skills:
	  storage_url: redis://localhost:6379/0
	  container: skills
	memory:
	  storage_url: file:///var/lib/skillconnector
	  container: corpus
	  min_relevance: 0.7
	embedding:
	  provider: openai        # hash, openai, azure or ollama
	  model: text-embedding-3-small
	index:
	  provider: postgres      # volatile or postgres
	  dsn: postgres://localhost/skills
	  dimensions: 1536
	storage:
	  retry:
	    base_delay: 2s
	    max_retries: 5
	    max_delay: 10s
	    network_timeout: 100s
	server:
	  address: ":8080"
	log:
	  level: info
	  format: json

Unknown keys are rejected.

# Environment

Every SKILLCONNECTOR_<SECTION>_<KEY> variable listed in applyEnv overrides the
file. The embedding API key also falls back to OPENAI_API_KEY.
*/
package config
