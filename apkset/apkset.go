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

// Package apkset serializes finalized module splits into APKs and records
// them in a table of contents, producing either an APK set archive or a
// loose output directory.
package apkset

import (
	"bytes"
	"strings"

	"android/bundletool/bundle"
	"android/bundletool/splitter"
	"android/bundletool/zip"
)

// Serializer turns one finalized split into APK bytes. The split handed in
// is effectively immutable; implementations may run concurrently.
type Serializer interface {
	Serialize(s *splitter.ModuleSplit) ([]byte, error)
}

// ProtoApkSerializer writes proto APKs: the manifest and resource table
// stay in their protobuf encoding, ready for the external resource
// compiler to convert to binary form. Entry payload placement follows the
// APK layout: dex and root files at the top level, everything else under
// its bundle directory.
type ProtoApkSerializer struct{}

func (ProtoApkSerializer) Serialize(s *splitter.ModuleSplit) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	if s.Manifest.Node != nil {
		if err := w.WriteEntry("AndroidManifest.xml", s.Manifest.Node.Marshal(), zip.Store); err != nil {
			return nil, err
		}
	}
	if s.ResourceTable != nil {
		if err := w.WriteEntry("resources.pb", s.ResourceTable.Marshal(), zip.Store); err != nil {
			return nil, err
		}
	}
	for _, e := range s.Entries {
		contents, err := e.Content.Bytes()
		if err != nil {
			return nil, err
		}
		method := uint16(zip.Deflate)
		if e.ForceUncompressed {
			method = zip.Store
		}
		if err := w.WriteEntry(apkEntryPath(e.Path), contents, method); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// apkEntryPath maps a module entry path to its location inside an APK.
func apkEntryPath(path string) string {
	if strings.HasPrefix(path, bundle.DexDirectory+"/") {
		return strings.TrimPrefix(path, bundle.DexDirectory+"/")
	}
	if strings.HasPrefix(path, bundle.RootDirectory+"/") {
		return strings.TrimPrefix(path, bundle.RootDirectory+"/")
	}
	return path
}

// apkPath names the APK of a split inside the set, matching the layout the
// set extractor expects.
func apkPath(s *splitter.ModuleSplit, universal bool) string {
	switch {
	case universal:
		return "universal.apk"
	case s.Type == splitter.StandaloneApk:
		return "standalones/standalone-" + shardSuffix(s) + ".apk"
	case s.Type == splitter.SystemApk && s.MasterSplit && s.ModuleName == bundle.BaseModuleName:
		return "system/system.apk"
	case s.MasterSplit:
		return "splits/" + s.ModuleName + "-master.apk"
	default:
		return "splits/" + s.ModuleName + "-" + s.SuffixName() + ".apk"
	}
}

func shardSuffix(s *splitter.ModuleSplit) string {
	if suffix := s.SuffixName(); suffix != "" {
		return suffix
	}
	return "fused"
}
