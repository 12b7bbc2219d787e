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

package bundle

import (
	"os"
	"strings"

	bp "android/bundletool/bundle_proto"
	"android/bundletool/zip"
)

// Open reads a bundle archive from disk. The returned closer must stay open
// while the bundle's lazy entry contents are in use.
func Open(path string) (*Bundle, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	b, err := Read(f, st.Size())
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return b, f, nil
}

// Read parses a bundle archive.
func Read(r interface {
	ReadAt(p []byte, off int64) (int, error)
}, size int64) (*Bundle, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, Errorf(InvalidBundle, "not a zip archive: %v", err)
	}

	bundle := &Bundle{}

	// Group entries by module directory, preserving archive order.
	type rawModule struct {
		name    string
		entries []*zip.File
	}
	var rawModules []*rawModule
	moduleIndex := map[string]*rawModule{}

	var haveConfig bool
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			return nil, &UserError{
				Kind:    InvalidBundle,
				Message: "the bundle must not contain directory zip entries",
				Path:    f.Name,
			}
		}
		switch {
		case f.Name == ConfigFileName:
			buf, err := zip.ReadFile(f)
			if err != nil {
				return nil, err
			}
			cfg := new(bp.BundleConfig)
			if err := cfg.Unmarshal(buf); err != nil {
				return nil, Errorf(InvalidBundle, "cannot parse %s: %v", ConfigFileName, err)
			}
			bundle.Config = cfg
			haveConfig = true
		case strings.HasPrefix(f.Name, MetadataDirectory+"/"):
			rel := strings.TrimPrefix(f.Name, MetadataDirectory+"/")
			namespace, name, ok := strings.Cut(rel, "/")
			if !ok {
				return nil, &UserError{
					Kind:    InvalidBundle,
					Message: "metadata files must be namespaced",
					Path:    f.Name,
				}
			}
			bundle.Metadata.Add(MetadataFile{
				Namespace: namespace,
				Name:      name,
				Content:   ZipEntrySource(f),
			})
		default:
			dir, _, ok := strings.Cut(f.Name, "/")
			if !ok {
				// Unknown loose file at the archive root; tolerated.
				continue
			}
			rm := moduleIndex[dir]
			if rm == nil {
				if !ValidModuleName(dir) {
					return nil, &UserError{
						Kind:    InvalidBundle,
						Message: "invalid module name " + dir,
						Path:    f.Name,
					}
				}
				rm = &rawModule{name: dir}
				moduleIndex[dir] = rm
				rawModules = append(rawModules, rm)
			}
			rm.entries = append(rm.entries, f)
		}
	}

	if !haveConfig {
		return nil, Errorf(InvalidBundle, "missing %s", ConfigFileName)
	}

	for _, rm := range rawModules {
		m, err := readModule(rm.name, rm.entries)
		if err != nil {
			return nil, err
		}
		bundle.Modules = append(bundle.Modules, m)
	}
	return bundle, nil
}

func readModule(name string, files []*zip.File) (*Module, error) {
	var manifest Manifest
	var table *bp.ResourceTable
	var assets *bp.Assets
	var native *bp.NativeLibraries
	var apex *bp.ApexImages
	var entries []Entry

	for _, f := range files {
		rel := strings.TrimPrefix(f.Name, name+"/")
		switch rel {
		case ManifestFileName:
			buf, err := zip.ReadFile(f)
			if err != nil {
				return nil, err
			}
			node := new(bp.XmlNode)
			if err := node.Unmarshal(buf); err != nil {
				return nil, PathErrorf(InvalidBundle, name, f.Name, "cannot parse manifest: %v", err)
			}
			manifest = Manifest{Node: node}
		case ResourceTableName:
			buf, err := zip.ReadFile(f)
			if err != nil {
				return nil, err
			}
			table = new(bp.ResourceTable)
			if err := table.Unmarshal(buf); err != nil {
				return nil, PathErrorf(InvalidBundle, name, f.Name, "cannot parse resource table: %v", err)
			}
		case AssetsTargetingPb:
			buf, err := zip.ReadFile(f)
			if err != nil {
				return nil, err
			}
			assets = new(bp.Assets)
			if err := assets.Unmarshal(buf); err != nil {
				return nil, PathErrorf(InvalidBundle, name, f.Name, "cannot parse assets targeting: %v", err)
			}
		case NativeTargetingPb:
			buf, err := zip.ReadFile(f)
			if err != nil {
				return nil, err
			}
			native = new(bp.NativeLibraries)
			if err := native.Unmarshal(buf); err != nil {
				return nil, PathErrorf(InvalidBundle, name, f.Name, "cannot parse native targeting: %v", err)
			}
		case ApexTargetingPb:
			buf, err := zip.ReadFile(f)
			if err != nil {
				return nil, err
			}
			apex = new(bp.ApexImages)
			if err := apex.Unmarshal(buf); err != nil {
				return nil, PathErrorf(InvalidBundle, name, f.Name, "cannot parse apex targeting: %v", err)
			}
		default:
			entries = append(entries, Entry{
				Path:    rel,
				Content: ZipEntrySource(f),
			})
		}
	}

	if manifest.Node == nil {
		return nil, ModuleErrorf(InvalidBundle, name, "missing %s", ManifestFileName)
	}

	m := NewModule(name, manifest, entries)
	m.ResourceTable = table
	m.Assets = assets
	m.NativeLibs = native
	m.ApexImages = apex
	return m, nil
}

// ValidateReferencedFiles checks that every file the resource table points
// at exists among the module's entries.
func ValidateReferencedFiles(m *Module) error {
	for _, pkg := range m.ResourceTable.GetPackage() {
		for _, typ := range pkg.GetType() {
			for _, entry := range typ.GetEntry() {
				for _, cv := range entry.GetConfigValue() {
					file := cv.GetValue().GetItem().GetFile()
					if file.GetPath() == "" {
						continue
					}
					if _, ok := m.Entry(file.GetPath()); !ok {
						return PathErrorf(ResourceTableMissingFile, m.Name, file.GetPath(),
							"resource table references a missing file")
					}
				}
			}
		}
	}
	return nil
}
