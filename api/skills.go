// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stacklok/skillconnector/cel"
	"github.com/stacklok/skillconnector/skills"
	"github.com/stacklok/skillconnector/validation/name"
)

type rebuildResponse struct {
	Plugins   int `json:"plugins"`
	Functions int `json:"functions"`
}

func (s *Server) listSkills(w http.ResponseWriter, r *http.Request) {
	reg := s.registry.Load()

	var f *cel.Filter
	if expr := r.URL.Query().Get("filter"); expr != "" {
		var err error
		if f, err = s.filters.Compile(expr); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	infos, err := f.Apply(reg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if infos == nil {
		infos = []skills.FunctionInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

// skillPath validates the path parameters. Names that would break the
// registry build are refused before they reach storage.
func skillPath(r *http.Request) (plugin, function string, err error) {
	plugin, function = r.PathValue("plugin"), r.PathValue("function")
	for _, p := range []struct{ kind, value string }{{"plugin", plugin}, {"function", function}} {
		if err := name.Validate(p.kind, p.value); err != nil {
			return "", "", &skills.ValidationError{
				Path: skills.PromptPath(plugin, function), Kind: p.kind, Name: p.value, Err: err,
			}
		}
	}
	return plugin, function, nil
}

func (s *Server) getSkill(w http.ResponseWriter, r *http.Request) {
	plugin, function, err := skillPath(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	skill, err := s.skills.Get(r.Context(), plugin, function)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (s *Server) putSkill(w http.ResponseWriter, r *http.Request) {
	plugin, function, err := skillPath(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var body skills.Skill
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.fail(w, r, fmt.Errorf("%w: decoding skill: %w", errBadRequest, err))
		return
	}
	if body.Config != "" {
		if _, err := skills.ParseConfig([]byte(body.Config)); err != nil {
			s.fail(w, r, &skills.ConfigError{Plugin: plugin, Function: function, Err: err})
			return
		}
	}

	if err := s.skills.Insert(r.Context(), plugin, function, body.Prompt, body.Config); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteSkill(w http.ResponseWriter, r *http.Request) {
	plugin, function, err := skillPath(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.skills.Delete(r.Context(), plugin, function); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) rebuild(w http.ResponseWriter, r *http.Request) {
	reg, err := s.rebuilder.Register(r.Context(), s.engine)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rebuildResponse{Plugins: len(reg.Plugins()), Functions: reg.Len()})
}
