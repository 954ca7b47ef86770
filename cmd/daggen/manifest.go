// Copyright (c) 2026 Daggen Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.daggen.dev/daggen"
	"go.daggen.dev/daggen/internal/srctree"
)

// Manifest is the JSON form of the front-end's resolved declarations: the
// components to generate and the injectable types the binding graph may
// discover. It stands in for an annotation reader during development and
// in tests of the end-to-end driver.
type Manifest struct {
	Components  []manifestComponent  `json:"components"`
	Injectables []manifestInjectable `json:"injectables"`
}

type manifestComponent struct {
	Type        string             `json:"type"`
	Production  bool               `json:"production"`
	Scopes      []string           `json:"scopes"`
	Modules     []manifestModule   `json:"modules"`
	EntryPoints []manifestEntry    `json:"entryPoints"`
	Subs        []manifestComponent `json:"subcomponents"`
}

type manifestModule struct {
	Type     string            `json:"type"`
	Bindings []manifestBinding `json:"bindings"`
}

type manifestBinding struct {
	Provides  string   `json:"provides"`
	Binds     string   `json:"binds"`
	To        string   `json:"to"`
	Method    string   `json:"method"`
	Scope     string   `json:"scope"`
	Static    bool     `json:"static"`
	IntoSet   bool     `json:"intoSet"`
	IntoMap   bool     `json:"intoMap"`
	MapKey    string   `json:"mapKey"`
	Deps      []string `json:"deps"`
}

type manifestEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Kind string `json:"kind"`
}

type manifestInjectable struct {
	Type  string   `json:"type"`
	Scope string   `json:"scope"`
	Deps  []string `json:"deps"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// parseTypeName splits "pkg.path.Outer.Inner" before its first capitalized
// segment: everything before that segment is the package. With no
// capitalized segment, the last segment is the type name.
func parseTypeName(s string) daggen.TypeName {
	parts := strings.Split(s, ".")
	split := len(parts) - 1
	for i, p := range parts {
		if p != "" && p[0] >= 'A' && p[0] <= 'Z' {
			split = i
			break
		}
	}
	return daggen.TypeName{
		Pkg:   strings.Join(parts[:split], "."),
		Names: parts[split:],
	}
}

func parseRequestKind(s string) daggen.RequestKind {
	switch s {
	case "", "instance":
		return daggen.Instance
	case "provider":
		return daggen.Provider
	case "lazy":
		return daggen.Lazy
	case "producer":
		return daggen.Producer
	case "future":
		return daggen.Future
	case "membersInjector":
		return daggen.MembersInjector
	default:
		return daggen.Instance
	}
}

func parseScope(s string) *daggen.Scope {
	if s == "" {
		return nil
	}
	scope := daggen.NewScope(s)
	return &scope
}

// Descriptors converts the manifest's component declarations.
func (m *Manifest) Descriptors() []*daggen.ComponentDescriptor {
	out := make([]*daggen.ComponentDescriptor, 0, len(m.Components))
	for i := range m.Components {
		out = append(out, convertComponent(&m.Components[i]))
	}
	return out
}

func convertComponent(mc *manifestComponent) *daggen.ComponentDescriptor {
	c := &daggen.ComponentDescriptor{
		Type:       parseTypeName(mc.Type),
		Production: mc.Production,
	}
	for _, s := range mc.Scopes {
		c.Scopes = append(c.Scopes, daggen.NewScope(s))
	}
	for _, mm := range mc.Modules {
		c.Modules = append(c.Modules, convertModule(mm))
	}
	for _, ep := range mc.EntryPoints {
		c.EntryPoints = append(c.EntryPoints, daggen.EntryPoint{
			Name: ep.Name,
			Key:  daggen.NewKey(parseTypeName(ep.Type)),
			Kind: parseRequestKind(ep.Kind),
		})
	}
	for i := range mc.Subs {
		c.Subcomponents = append(c.Subcomponents, convertComponent(&mc.Subs[i]))
	}
	return c
}

func convertModule(mm manifestModule) *daggen.ModuleDescriptor {
	md := &daggen.ModuleDescriptor{Type: parseTypeName(mm.Type)}
	for _, mb := range mm.Bindings {
		md.Bindings = append(md.Bindings, convertBinding(mb))
	}
	return md
}

func convertBinding(mb manifestBinding) *daggen.ModuleBinding {
	b := &daggen.ModuleBinding{
		Method:  mb.Method,
		Scope:   parseScope(mb.Scope),
		Static:  mb.Static,
		IntoSet: mb.IntoSet,
		IntoMap: mb.IntoMap,
		MapKey:  mb.MapKey,
	}
	if mb.IntoMap {
		// Manifest map keys are string literals.
		b.MapKeyType = parseTypeName("java.lang.String")
	}
	switch {
	case mb.Binds != "":
		b.Kind = daggen.Delegate
		b.Key = daggen.NewKey(parseTypeName(mb.Binds))
		b.Deps = []daggen.DependencyRequest{{Key: daggen.NewKey(parseTypeName(mb.To)), Kind: daggen.Instance}}
	default:
		b.Kind = daggen.Provision
		b.Key = daggen.NewKey(parseTypeName(mb.Provides))
		for _, d := range mb.Deps {
			b.Deps = append(b.Deps, daggen.DependencyRequest{Key: daggen.NewKey(parseTypeName(d)), Kind: daggen.Instance})
		}
	}
	return b
}

// ManifestSources resolves injectable constructors declared in the
// manifest.
type ManifestSources struct {
	injectables map[string]*daggen.InjectableType
}

var _ daggen.Sources = (*ManifestSources)(nil)

// NewManifestSources indexes the manifest's injectables.
func NewManifestSources(m *Manifest) *ManifestSources {
	s := &ManifestSources{injectables: make(map[string]*daggen.InjectableType)}
	for _, inj := range m.Injectables {
		t := parseTypeName(inj.Type)
		it := &daggen.InjectableType{Type: t, Scope: parseScope(inj.Scope)}
		for i, d := range inj.Deps {
			it.Params = append(it.Params, daggen.Parameter{
				Name: fmt.Sprintf("p%d", i),
				Key:  daggen.NewKey(parseTypeName(d)),
				Kind: daggen.Instance,
			})
		}
		s.injectables[t.String()] = it
	}
	return s
}

// InjectableType implements daggen.Sources.
func (s *ManifestSources) InjectableType(t daggen.TypeName) (*daggen.InjectableType, bool) {
	it, ok := s.injectables[t.String()]
	return it, ok
}

// AssistedFactory implements daggen.Sources.
func (s *ManifestSources) AssistedFactory(daggen.TypeName) (*daggen.AssistedFactory, bool) {
	return nil, false
}

// MembersInjection implements daggen.Sources.
func (s *ManifestSources) MembersInjection(daggen.TypeName) (*daggen.MembersInjection, bool) {
	return nil, false
}

// Pending implements daggen.Sources; a manifest is complete by
// construction.
func (s *ManifestSources) Pending(daggen.TypeName) bool { return false }

// DirSink renders each generated file under a root directory, one file per
// outermost type.
type DirSink struct {
	Root string
}

var _ daggen.Sink = (*DirSink)(nil)

// Write implements daggen.Sink.
func (s *DirSink) Write(f *srctree.File) error {
	if len(f.Types) == 0 {
		return nil
	}
	dir := filepath.Join(s.Root, filepath.FromSlash(strings.ReplaceAll(f.Package, ".", "/")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := strings.TrimSuffix(f.Types[0].Name, "<T>") + ".java"
	return os.WriteFile(filepath.Join(dir, name), []byte(f.Render()), 0o644)
}
