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

// Package preprocess applies whole-bundle rewrites before splitting starts:
// marking embedded APKs for signing and re-normalizing entry compression so
// serializers can copy compressed payloads verbatim.
package preprocess

import (
	"android/bundletool/bundle"
)

// Preprocessor rewrites a bundle. Implementations return a new bundle and
// leave their input untouched.
type Preprocessor interface {
	Preprocess(b *bundle.Bundle) (*bundle.Bundle, error)
}

// Chain applies preprocessors in a fixed order.
type Chain []Preprocessor

func (c Chain) Preprocess(b *bundle.Bundle) (*bundle.Bundle, error) {
	var err error
	for _, p := range c {
		b, err = p.Preprocess(b)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

// EmbeddedApkSigner marks the embedded APKs declared in the bundle config
// so the serializer signs them along with the outer APK.
type EmbeddedApkSigner struct{}

func (EmbeddedApkSigner) Preprocess(b *bundle.Bundle) (*bundle.Bundle, error) {
	paths := map[string]bool{}
	for _, cfg := range b.Config.GetUnsignedEmbeddedApkConfig() {
		paths[cfg.GetPath()] = true
	}
	if len(paths) == 0 {
		return b, nil
	}

	out := &bundle.Bundle{Config: b.Config, Metadata: b.Metadata}
	for _, m := range b.Modules {
		entries := make([]bundle.Entry, len(m.Entries()))
		for i, e := range m.Entries() {
			if paths[e.Path] {
				e.ShouldSign = true
			}
			entries[i] = e
		}
		nm := bundle.NewModule(m.Name, m.Manifest, entries)
		nm.ResourceTable = m.ResourceTable
		nm.Assets = m.Assets
		nm.NativeLibs = m.NativeLibs
		nm.ApexImages = m.ApexImages
		out.Modules = append(out.Modules, nm)
	}
	return out, nil
}
