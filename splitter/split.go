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

// Package splitter turns bundle modules into module splits: the master
// split plus one split per targeted dimension value. Splitters never mutate
// their input; every stage returns fresh splits.
package splitter

import (
	"strings"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/targeting"
)

// SplitType classifies the APK a split becomes.
type SplitType int

const (
	SplitApk SplitType = iota
	StandaloneApk
	SystemApk
	InstantApk
	AssetSliceApk
)

func (t SplitType) String() string {
	switch t {
	case StandaloneApk:
		return "STANDALONE"
	case SystemApk:
		return "SYSTEM"
	case InstantApk:
		return "INSTANT"
	case AssetSliceApk:
		return "ASSET_SLICE"
	default:
		return "SPLIT"
	}
}

// ModuleSplit is the unit flowing through the pipeline: one module's
// contribution to one targeting cell.
type ModuleSplit struct {
	ModuleName  string
	Type        SplitType
	MasterSplit bool

	VariantTargeting *bp.VariantTargeting
	ApkTargeting     *bp.ApkTargeting

	Manifest      bundle.Manifest
	ResourceTable *bp.ResourceTable
	Entries       []bundle.Entry

	NativeLibs *bp.NativeLibraries
	ApexImages *bp.ApexImages
}

// FromModule seeds the splitting pipeline with a split holding the whole
// module, targeted at nothing but the variant's SDK floor.
func FromModule(m *bundle.Module, variant *bp.VariantTargeting) *ModuleSplit {
	return &ModuleSplit{
		ModuleName:       m.Name,
		Type:             SplitApk,
		VariantTargeting: variant,
		ApkTargeting:     &bp.ApkTargeting{},
		Manifest:         m.Manifest,
		ResourceTable:    m.ResourceTable,
		Entries:          m.Entries(),
		NativeLibs:       m.NativeLibs,
		ApexImages:       m.ApexImages,
	}
}

// clone copies the split's scalar state; slices and messages are shared
// until a With* helper replaces them.
func (s *ModuleSplit) clone() *ModuleSplit {
	c := *s
	return &c
}

// WithEntries returns a copy holding the given entries.
func (s *ModuleSplit) WithEntries(entries []bundle.Entry) *ModuleSplit {
	c := s.clone()
	c.Entries = entries
	return c
}

// WithApkTargeting returns a copy with merged-in targeting.
func (s *ModuleSplit) WithApkTargeting(t *bp.ApkTargeting) *ModuleSplit {
	c := s.clone()
	c.ApkTargeting = targeting.MergeApkTargeting(s.ApkTargeting, t)
	return c
}

// WithResourceTable returns a copy holding the given resource table.
func (s *ModuleSplit) WithResourceTable(table *bp.ResourceTable) *ModuleSplit {
	c := s.clone()
	c.ResourceTable = table
	return c
}

// WithManifest returns a copy holding the given manifest.
func (s *ModuleSplit) WithManifest(m bundle.Manifest) *ModuleSplit {
	c := s.clone()
	c.Manifest = m
	return c
}

// suffixSanitizer turns targeting values into valid split name characters.
var suffixSanitizer = strings.NewReplacer("-", "_", ".", "_")

// SuffixName derives the split id suffix from the split's targeting, in
// dimension order. The master split has no suffix.
func (s *ModuleSplit) SuffixName() string {
	var parts []string
	t := s.ApkTargeting
	for _, abi := range t.GetAbiTargeting().GetValue() {
		parts = append(parts, suffixSanitizer.Replace(targeting.AbiDirName(abi.Alias)))
	}
	if t.GetSanitizerTargeting() != nil && len(t.GetSanitizerTargeting().GetValue()) > 0 {
		parts = append(parts, "hwasan")
	}
	for _, d := range t.GetScreenDensityTargeting().GetValue() {
		parts = append(parts, strings.ToLower(d.DensityAlias.String()))
	}
	for _, lang := range t.GetLanguageTargeting().GetValue() {
		parts = append(parts, lang)
	}
	for _, tcf := range t.GetTextureCompressionFormatTargeting().GetValue() {
		parts = append(parts, targeting.TcfName(tcf.Alias))
	}
	for _, tier := range t.GetDeviceTierTargeting().GetValue() {
		parts = append(parts, "tier_"+tier)
	}
	for _, cs := range t.GetCountrySetTargeting().GetValue() {
		parts = append(parts, "countries_"+cs)
	}
	return strings.Join(parts, "_")
}

// SplitId returns the manifest split id of this split: the module name for
// feature masters, "config.<suffix>" for base config splits and
// "<module>.config.<suffix>" for feature config splits. The base master
// has no split id.
func (s *ModuleSplit) SplitId() string {
	base := ""
	if s.ModuleName != bundle.BaseModuleName {
		base = s.ModuleName
	}
	if s.MasterSplit {
		return base
	}
	suffix := "config." + s.SuffixName()
	if base == "" {
		return suffix
	}
	return base + "." + suffix
}

// writeSplitIdentity stamps the split id and master reference into the
// manifest. Returns a split with a cloned, stamped manifest.
func (s *ModuleSplit) writeSplitIdentity() *ModuleSplit {
	m := s.Manifest.Clone()
	if id := s.SplitId(); id != "" {
		m.SetAttribute("", "split", id)
	}
	if !s.MasterSplit && s.ModuleName != bundle.BaseModuleName {
		m.SetAttribute("", "configForSplit", s.ModuleName)
	}
	if s.MasterSplit && s.ModuleName != bundle.BaseModuleName {
		m.SetAttribute(bundle.AndroidNamespace, "isFeatureSplit", "true")
	}
	return s.WithManifest(m)
}

// RemoveSplitName drops split identity attributes, which are meaningless on
// standalone and system APKs.
func (s *ModuleSplit) RemoveSplitName() *ModuleSplit {
	m := s.Manifest.Clone()
	m.RemoveAttribute("", "split")
	m.RemoveAttribute("", "configForSplit")
	m.RemoveAttribute(bundle.AndroidNamespace, "isFeatureSplit")
	return s.WithManifest(m)
}

// SetExtractNativeLibs sets android:extractNativeLibs on the application
// element, creating it if absent.
func (s *ModuleSplit) SetExtractNativeLibs(value bool) *ModuleSplit {
	m := s.Manifest.Clone()
	root := m.Root()
	if root == nil {
		return s
	}
	var app *bp.XmlElement
	for _, c := range root.Child {
		if c.Element != nil && c.Element.Name == "application" {
			app = c.Element
			break
		}
	}
	if app == nil {
		app = &bp.XmlElement{Name: "application"}
		root.Child = append(root.Child, &bp.XmlNode{Element: app})
	}
	v := "false"
	if value {
		v = "true"
	}
	found := false
	for _, a := range app.Attribute {
		if a.Name == "extractNativeLibs" && a.NamespaceUri == bundle.AndroidNamespace {
			a.Value = v
			found = true
		}
	}
	if !found {
		app.Attribute = append(app.Attribute, &bp.XmlAttribute{
			NamespaceUri: bundle.AndroidNamespace,
			Name:         "extractNativeLibs",
			Value:        v,
		})
	}
	return s.WithManifest(m)
}

// markRequiresSanitizer tags the split's manifest so the platform only
// installs it on devices with sanitizer support.
func (s *ModuleSplit) markRequiresSanitizer() *ModuleSplit {
	m := s.Manifest.Clone()
	m.SetAttribute("", "requiresSanitizer", "hwaddress")
	return s.WithManifest(m)
}

// isDefaultTargeting reports whether the split targets nothing beyond the
// variant itself, making it the master candidate.
func (s *ModuleSplit) isDefaultTargeting() bool {
	t := s.ApkTargeting
	return len(t.GetAbiTargeting().GetValue()) == 0 &&
		len(t.GetScreenDensityTargeting().GetValue()) == 0 &&
		len(t.GetLanguageTargeting().GetValue()) == 0 &&
		len(t.GetTextureCompressionFormatTargeting().GetValue()) == 0 &&
		len(t.GetMultiAbiTargeting().GetValue()) == 0 &&
		(t.GetSanitizerTargeting() == nil || len(t.GetSanitizerTargeting().GetValue()) == 0) &&
		len(t.GetDeviceTierTargeting().GetValue()) == 0 &&
		len(t.GetCountrySetTargeting().GetValue()) == 0
}
