// Copyright 2024 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bundle holds the in-memory model of an App Bundle: an ordered set
// of modules, each with its entries, manifest and targeting configs, plus
// the bundle-wide config and metadata. Modules are immutable once read.
package bundle

import (
	"regexp"
	"sort"
	"strings"

	bp "android/bundletool/bundle_proto"
)

const (
	// BaseModuleName is the required name of the base module directory.
	BaseModuleName = "base"

	// MetadataDirectory is the top-level directory of bundle metadata files.
	MetadataDirectory = "BUNDLE-METADATA"

	// ConfigFileName is the bundle config entry at the archive root.
	ConfigFileName = "BundleConfig.pb"

	ManifestDirectory = "manifest"
	ManifestFileName  = "manifest/AndroidManifest.xml"
	ResourceTableName = "resources.pb"
	AssetsTargetingPb = "assets.pb"
	NativeTargetingPb = "native.pb"
	ApexTargetingPb   = "apex.pb"
	DexDirectory      = "dex"
	LibDirectory      = "lib"
	ResDirectory      = "res"
	AssetsDirectory   = "assets"
	RootDirectory     = "root"
	ApexDirectory     = "apex"
)

var moduleNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// ValidModuleName reports whether name is acceptable as a module directory.
func ValidModuleName(name string) bool {
	return moduleNameRe.MatchString(name)
}

// Module is one module of a bundle. Entry paths are relative to the module
// directory. The entry order is the archive order and is preserved through
// the pipeline.
type Module struct {
	Name          string
	Manifest      Manifest
	ResourceTable *bp.ResourceTable
	Assets        *bp.Assets
	NativeLibs    *bp.NativeLibraries
	ApexImages    *bp.ApexImages

	Type     ModuleType
	Delivery DeliveryMode

	entries []Entry
	byPath  map[string]int
}

// NewModule assembles a module from parsed parts. The caller passes entries
// in their final order.
func NewModule(name string, manifest Manifest, entries []Entry) *Module {
	m := &Module{
		Name:     name,
		Manifest: manifest,
		Type:     manifest.ModuleType(),
		Delivery: manifest.DeliveryMode(),
		entries:  entries,
		byPath:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		m.byPath[e.Path] = i
	}
	return m
}

// Entries returns the module's entries in order. Callers must not modify
// the returned slice.
func (m *Module) Entries() []Entry {
	return m.entries
}

// Entry returns the entry at path.
func (m *Module) Entry(path string) (Entry, bool) {
	i, ok := m.byPath[path]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// EntriesUnder returns the entries whose path is inside dir, in order.
func (m *Module) EntriesUnder(dir string) []Entry {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var out []Entry
	for _, e := range m.entries {
		if strings.HasPrefix(e.Path, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// IsBase reports whether this is the base module.
func (m *Module) IsBase() bool {
	return m.Name == BaseModuleName
}

// MetadataFile is one file under BUNDLE-METADATA/<namespace>/.
type MetadataFile struct {
	Namespace string
	Name      string
	Content   ByteSource
}

// Metadata is the namespaced metadata file tree of a bundle.
type Metadata struct {
	files []MetadataFile
}

func (md *Metadata) Add(f MetadataFile) {
	md.files = append(md.files, f)
}

// Files returns all metadata files, ordered by (namespace, name).
func (md *Metadata) Files() []MetadataFile {
	out := append([]MetadataFile(nil), md.files...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Bundle is a parsed App Bundle.
type Bundle struct {
	Modules  []*Module
	Config   *bp.BundleConfig
	Metadata Metadata
}

// Module returns the named module, or nil.
func (b *Bundle) Module(name string) *Module {
	for _, m := range b.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// BaseModule returns the base module, or nil for asset-only bundles.
func (b *Bundle) BaseModule() *Module {
	return b.Module(BaseModuleName)
}

// Version returns the version of the tool that built the bundle.
func (b *Bundle) Version() string {
	return b.Config.GetBundletool().GetVersion()
}
