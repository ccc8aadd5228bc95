package model

import (
	"os"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/hngkr/releases-mcp/pkg/domain/types"
)

var ownerRepoRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]*/[A-Za-z0-9._\-]+$`)

// RepositoryEntry maps a short product name to its GitHub repository and an
// optional PyPI fallback package. Entries are immutable after load.
type RepositoryEntry struct {
	Name        string   // Canonical key from the mapping document
	Owner       string   // GitHub repository owner
	Repo        string   // GitHub repository name
	Aliases     []string // Alternate lookup names
	PyPIPackage string   // PyPI package queried when GitHub has no release
}

// FullName returns the owner/repo form of the entry
func (e *RepositoryEntry) FullName() string {
	return e.Owner + "/" + e.Repo
}

// Mapping is the load-once repository alias table. It is never mutated
// after construction, so concurrent lookups need no locking.
type Mapping struct {
	entries map[string]*RepositoryEntry
}

type mappingEntryDoc struct {
	Repo        string   `toml:"repo"`
	Aliases     []string `toml:"aliases"`
	PyPIPackage string   `toml:"pypi_package"`
}

// LoadMapping reads and parses a TOML mapping file. A missing or malformed
// file is a startup failure, not a per-request condition.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read mapping file",
			goerr.T(types.TagConfig), goerr.V("path", path))
	}
	m, err := ParseMapping(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load mapping file", goerr.V("path", path))
	}
	return m, nil
}

// ParseMapping builds a Mapping from a TOML document of the form:
//
//	[fastapi]
//	repo = "tiangolo/fastapi"
//	aliases = ["fast-api"]
//	pypi_package = "fastapi"
func ParseMapping(data []byte) (*Mapping, error) {
	var doc map[string]mappingEntryDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "malformed mapping document", goerr.T(types.TagConfig))
	}

	m := &Mapping{entries: make(map[string]*RepositoryEntry, len(doc))}
	for name, e := range doc {
		if !ownerRepoRE.MatchString(e.Repo) {
			return nil, goerr.New("mapping entry requires repo in owner/name form",
				goerr.T(types.TagConfig), goerr.V("entry", name), goerr.V("repo", e.Repo))
		}
		owner, repo, _ := strings.Cut(e.Repo, "/")
		entry := &RepositoryEntry{
			Name:        name,
			Owner:       owner,
			Repo:        repo,
			Aliases:     e.Aliases,
			PyPIPackage: e.PyPIPackage,
		}

		for _, key := range append([]string{name}, e.Aliases...) {
			key = strings.ToLower(key)
			if prev, ok := m.entries[key]; ok && prev != entry {
				return nil, goerr.New("duplicate mapping key",
					goerr.T(types.TagConfig), goerr.V("key", key), goerr.V("entries", []string{prev.Name, name}))
			}
			m.entries[key] = entry
		}
	}
	return m, nil
}

// NewMapping builds a Mapping from prepared entries. Intended for tests.
func NewMapping(entries ...*RepositoryEntry) *Mapping {
	m := &Mapping{entries: make(map[string]*RepositoryEntry)}
	for _, e := range entries {
		m.entries[strings.ToLower(e.Name)] = e
		for _, a := range e.Aliases {
			m.entries[strings.ToLower(a)] = e
		}
	}
	return m
}

// Resolve looks up a name case-insensitively against canonical keys and
// aliases. A name already in owner/repo form passes through as an ad-hoc
// entry with no aliases and no PyPI fallback. Returns nil when the name
// cannot be resolved.
func (m *Mapping) Resolve(name string) *RepositoryEntry {
	if e, ok := m.entries[strings.ToLower(strings.TrimSpace(name))]; ok {
		return e
	}
	if ownerRepoRE.MatchString(name) {
		owner, repo, _ := strings.Cut(name, "/")
		return &RepositoryEntry{Name: name, Owner: owner, Repo: repo}
	}
	return nil
}

// Len returns the number of configured lookup keys
func (m *Mapping) Len() int {
	return len(m.entries)
}
