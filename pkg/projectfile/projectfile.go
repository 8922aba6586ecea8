// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package projectfile loads the package-description file that carries
// dependency declarations. The file declares its own specification version,
// which gates the dependency syntax its declarations may use.
package projectfile

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"

	"github.com/m-renaud/cabal/pkg/dependency"
	"github.com/m-renaud/cabal/pkg/diagnostics"
	"github.com/m-renaud/cabal/pkg/pkgname"
	"github.com/m-renaud/cabal/pkg/specversion"
)

var ErrInvalidProjectFile = errors.New("invalid project file")

const (
	APIGroup      = "cabal.m-renaud.github.com"
	SchemaVersion = "v1"
	APIVersion    = APIGroup + "/" + SchemaVersion
	Kind          = "Package"
)

type Meta struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

func (m Meta) validate() error {
	if m.Kind == "" {
		return fmt.Errorf("%w: missing required field 'kind'", ErrInvalidProjectFile)
	}
	if m.Kind != Kind {
		return fmt.Errorf("%w: unsupported kind %q, expected %q", ErrInvalidProjectFile, m.Kind, Kind)
	}
	if m.APIVersion == "" {
		return fmt.Errorf("%w: missing required field 'apiVersion'", ErrInvalidProjectFile)
	}
	if m.APIVersion != APIVersion {
		return fmt.Errorf("%w: unsupported apiVersion %q, expected %q", ErrInvalidProjectFile, m.APIVersion, APIVersion)
	}
	return nil
}

type Project struct {
	Meta         `yaml:",inline"`
	SpecVersion  specversion.Version `yaml:"spec-version"`
	Name         string              `yaml:"name"`
	Version      string              `yaml:"version"`
	Dependencies []string            `yaml:"dependencies"`

	parsed     []dependency.Dependency
	advisories []diagnostics.Advisory
}

func Read(filePath string) (*Project, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ReadFromContents(contents)
}

// ReadFromContents parses and validates a project file. All dependency
// declarations are parsed under the file's declared spec-version; parse
// failures across the whole list are collected and reported together
// rather than stopping at the first one.
func ReadFromContents(contents []byte) (*Project, error) {
	expanded, err := expandEnv(contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProjectFile, err)
	}

	var obj Project
	if err := yaml.UnmarshalWithOptions(expanded, &obj, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProjectFile, err)
	}
	if err := obj.Meta.validate(); err != nil {
		return nil, err
	}
	if _, err := pkgname.Parse(obj.Name); err != nil {
		return nil, fmt.Errorf("%w: package name: %w", ErrInvalidProjectFile, err)
	}
	if _, err := semver.NewVersion(obj.Version); err != nil {
		return nil, fmt.Errorf("%w: package version %q: %w", ErrInvalidProjectFile, obj.Version, err)
	}

	var (
		deps      []dependency.Dependency
		collector diagnostics.Collector
		depErrs   []error
	)
	for _, raw := range obj.Dependencies {
		d, err := dependency.Parse(raw, obj.SpecVersion, &collector)
		if err != nil {
			depErrs = append(depErrs, fmt.Errorf("dependency %q: %w", raw, err))
			continue
		}
		deps = append(deps, d)
	}
	if len(depErrs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProjectFile, errors.Join(depErrs...))
	}

	slices.SortFunc(deps, dependency.Dependency.Compare)
	deps = slices.CompactFunc(deps, dependency.Dependency.Equal)
	obj.parsed = deps
	obj.advisories = collector.All()
	return &obj, nil
}

// ParsedDependencies returns the declared dependencies in canonical order,
// deduplicated.
func (p *Project) ParsedDependencies() []dependency.Dependency {
	return slices.Clone(p.parsed)
}

// Advisories returns the non-fatal notices collected while parsing the
// dependency list.
func (p *Project) Advisories() []diagnostics.Advisory {
	return slices.Clone(p.advisories)
}

func expandEnv(contents []byte) ([]byte, error) {
	var undefinedVars []string

	out := os.Expand(string(contents), func(key string) string {
		val, ok := os.LookupEnv(key)
		if !ok {
			undefinedVars = append(undefinedVars, key)
			return ""
		}
		return val
	})

	if len(undefinedVars) > 0 {
		return nil, fmt.Errorf("environment variables used in project file are not set: %v", undefinedVars)
	}
	return []byte(out), nil
}
