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

package targeting

import (
	"regexp"
	"strconv"
	"strings"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
)

// Targeted asset directory segments look like "<base>#<key>_<value>".
const targetingSeparator = "#"

var (
	languageValueRe = regexp.MustCompile(`^[a-zA-Z]{2,3}$`)
	tierValueRe     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	countriesRe     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	graphicsValueRe = regexp.MustCompile(`^([0-9]+)\.([0-9]+)$`)
)

// tcfValues is the closed set of texture format names accepted in
// directory suffixes. Narrower than the wire enum: formats like LATC have
// no directory-suffix spelling.
var tcfValues = map[string]bp.TextureCompressionFormat_TextureCompressionFormatAlias{
	"astc":     bp.TextureCompressionFormat_ASTC,
	"atc":      bp.TextureCompressionFormat_ATC,
	"dxt1":     bp.TextureCompressionFormat_DXT1,
	"paletted": bp.TextureCompressionFormat_PALETTED,
	"pvrtc":    bp.TextureCompressionFormat_PVRTC,
	"etc1":     bp.TextureCompressionFormat_ETC1_RGB8,
	"etc2":     bp.TextureCompressionFormat_ETC2,
	"s3tc":     bp.TextureCompressionFormat_S3TC,
	"3dc":      bp.TextureCompressionFormat_THREE_DC,
}

var tcfNames = func() map[bp.TextureCompressionFormat_TextureCompressionFormatAlias]string {
	m := make(map[bp.TextureCompressionFormat_TextureCompressionFormatAlias]string, len(tcfValues))
	for name, alias := range tcfValues {
		m[alias] = name
	}
	return m
}()

// TcfFromName resolves a suffix value like "astc" to the format alias.
func TcfFromName(name string) (bp.TextureCompressionFormat_TextureCompressionFormatAlias, bool) {
	alias, ok := tcfValues[name]
	return alias, ok
}

// TcfName returns the directory suffix value of a texture format.
func TcfName(alias bp.TextureCompressionFormat_TextureCompressionFormatAlias) string {
	return tcfNames[alias]
}

// ParsedDirectory is an asset directory path with the targeting carried by
// its "#key_value" segments.
type ParsedDirectory struct {
	// Path is the directory path as it appears in the module, suffixes
	// included.
	Path string
	// Targeting accumulates the targeting of every suffixed segment.
	Targeting *bp.AssetsDirectoryTargeting
}

// ParseDirectory parses every segment of an asset directory path. A path
// with no suffixed segments yields empty targeting.
func ParseDirectory(path string) (ParsedDirectory, error) {
	parsed := ParsedDirectory{Path: path, Targeting: &bp.AssetsDirectoryTargeting{}}
	for _, segment := range strings.Split(path, "/") {
		base, suffix, ok := strings.Cut(segment, targetingSeparator)
		if !ok {
			continue
		}
		key, value, ok := strings.Cut(suffix, "_")
		if !ok || base == "" {
			return ParsedDirectory{}, &bundle.UserError{
				Kind:    bundle.InvalidTargetingKey,
				Message: "malformed targeting suffix in segment " + segment,
				Path:    path,
			}
		}
		if err := applySegmentTargeting(parsed.Targeting, key, value, path); err != nil {
			return ParsedDirectory{}, err
		}
	}
	return parsed, nil
}

func applySegmentTargeting(t *bp.AssetsDirectoryTargeting, key, value, path string) error {
	badValue := func(format string, args ...interface{}) error {
		ue := bundle.Errorf(bundle.InvalidTargetingKey, format, args...)
		ue.Path = path
		return ue
	}
	switch key {
	case "lang":
		if !languageValueRe.MatchString(value) {
			return badValue("language %q must be a two or three letter code", value)
		}
		t.Language = &bp.LanguageTargeting{Value: []string{strings.ToLower(value)}}
	case "tcf":
		alias, ok := tcfValues[value]
		if !ok {
			return badValue("unknown texture compression format %q", value)
		}
		t.TextureCompressionFormat = &bp.TextureCompressionFormatTargeting{
			Value: []*bp.TextureCompressionFormat{{Alias: alias}},
		}
	case "tier":
		if !tierValueRe.MatchString(value) {
			return badValue("device tier %q must start with a letter", value)
		}
		t.DeviceTier = &bp.DeviceTierTargeting{Value: []string{value}}
	case "countries":
		if !countriesRe.MatchString(value) {
			return badValue("country set %q must start with a letter", value)
		}
		t.CountrySet = &bp.CountrySetTargeting{Value: []string{value}}
	case "opengl", "vulkan":
		m := graphicsValueRe.FindStringSubmatch(value)
		if m == nil {
			return badValue("graphics api version %q must be MAJOR.MINOR", value)
		}
		major, _ := strconv.ParseInt(m[1], 10, 32)
		minor, _ := strconv.ParseInt(m[2], 10, 32)
		version := &bp.GraphicsApiVersion{Major: int32(major), Minor: int32(minor)}
		if t.GraphicsApi == nil {
			t.GraphicsApi = &bp.GraphicsApi{}
		}
		if key == "opengl" {
			t.GraphicsApi.MinOpenGlVersion = version
		} else {
			t.GraphicsApi.MinVulkanVersion = version
		}
	default:
		return &bundle.UserError{
			Kind:    bundle.InvalidTargetingKey,
			Message: "unknown targeting key " + key,
			Path:    path,
		}
	}
	return nil
}

// suffixKeys maps a strippable dimension to its directory key.
var suffixKeys = map[Dimension]string{
	Language:                 "lang",
	TextureCompressionFormat: "tcf",
	DeviceTier:               "tier",
	CountrySet:               "countries",
}

// StripSuffix removes the "#key_value" suffix of one dimension from every
// segment of path, collapsing the variant directory into its canonical
// name. Other dimensions' suffixes are left alone.
func StripSuffix(path string, dim Dimension) string {
	key, ok := suffixKeys[dim]
	if !ok {
		return path
	}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		base, suffix, ok := strings.Cut(segment, targetingSeparator)
		if !ok {
			continue
		}
		if k, _, ok := strings.Cut(suffix, "_"); ok && k == key {
			segments[i] = base
		}
	}
	return strings.Join(segments, "/")
}

// DirectoryDimensions reports which dimensions a parsed directory targets.
func DirectoryDimensions(t *bp.AssetsDirectoryTargeting) []Dimension {
	var dims []Dimension
	if t.GetLanguage() != nil {
		dims = append(dims, Language)
	}
	if t.GetTextureCompressionFormat() != nil {
		dims = append(dims, TextureCompressionFormat)
	}
	if t.GetDeviceTier() != nil {
		dims = append(dims, DeviceTier)
	}
	if t.GetCountrySet() != nil {
		dims = append(dims, CountrySet)
	}
	if t != nil && t.GraphicsApi != nil {
		dims = append(dims, GraphicsApi)
	}
	return dims
}
