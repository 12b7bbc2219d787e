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
	"strconv"

	bp "android/bundletool/bundle_proto"
)

const (
	AndroidNamespace      = "http://schemas.android.com/apk/res/android"
	DistributionNamespace = "http://schemas.android.com/apk/distribution"
)

// Manifest wraps a module's proto XML AndroidManifest.xml tree. The tree is
// treated as immutable; editing operations work on a clone.
type Manifest struct {
	Node *bp.XmlNode
}

func (m Manifest) Root() *bp.XmlElement {
	if m.Node == nil {
		return nil
	}
	return m.Node.Element
}

// Clone deep-copies the manifest through its wire form.
func (m Manifest) Clone() Manifest {
	if m.Node == nil {
		return Manifest{}
	}
	n := new(bp.XmlNode)
	if err := n.Unmarshal(m.Node.Marshal()); err != nil {
		// The tree was produced by the same codec; failing to re-read it is
		// a bug, not an input error.
		panic(err)
	}
	return Manifest{Node: n}
}

func findChild(el *bp.XmlElement, name string) *bp.XmlElement {
	if el == nil {
		return nil
	}
	for _, c := range el.Child {
		if c.Element != nil && c.Element.Name == name {
			return c.Element
		}
	}
	return nil
}

func findAttribute(el *bp.XmlElement, namespace, name string) *bp.XmlAttribute {
	if el == nil {
		return nil
	}
	for _, a := range el.Attribute {
		if a.Name == name && a.NamespaceUri == namespace {
			return a
		}
	}
	return nil
}

// Attribute returns the value of the named attribute of the root element.
func (m Manifest) Attribute(namespace, name string) (string, bool) {
	a := findAttribute(m.Root(), namespace, name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetAttribute sets or replaces an attribute on the root element.
func (m Manifest) SetAttribute(namespace, name, value string) {
	root := m.Root()
	if root == nil {
		return
	}
	if a := findAttribute(root, namespace, name); a != nil {
		a.Value = value
		return
	}
	root.Attribute = append(root.Attribute, &bp.XmlAttribute{
		NamespaceUri: namespace,
		Name:         name,
		Value:        value,
	})
}

// RemoveAttribute removes an attribute from the root element and reports
// whether it was present.
func (m Manifest) RemoveAttribute(namespace, name string) bool {
	root := m.Root()
	if root == nil {
		return false
	}
	for i, a := range root.Attribute {
		if a.Name == name && a.NamespaceUri == namespace {
			root.Attribute = append(root.Attribute[:i], root.Attribute[i+1:]...)
			return true
		}
	}
	return false
}

func (m Manifest) Package() string {
	v, _ := m.Attribute("", "package")
	return v
}

func (m Manifest) VersionCode() (int64, error) {
	v, ok := m.Attribute(AndroidNamespace, "versionCode")
	if !ok {
		return 0, Errorf(InvalidVersionCode, "versionCode missing from manifest")
	}
	code, err := strconv.ParseInt(v, 10, 64)
	if err != nil || code <= 0 {
		return 0, Errorf(InvalidVersionCode, "versionCode %q is not a positive integer", v)
	}
	return code, nil
}

// SplitId returns the split attribute of the root element, empty for the
// base module.
func (m Manifest) SplitId() string {
	v, _ := m.Attribute("", "split")
	return v
}

// ModuleType classifies a module by its dist:module declaration.
type ModuleType int

const (
	FeatureModule ModuleType = iota
	AssetModule
	SdkModule
)

func (t ModuleType) String() string {
	switch t {
	case AssetModule:
		return "asset"
	case SdkModule:
		return "sdk"
	default:
		return "feature"
	}
}

// ModuleType reads the dist:module type declaration; modules without one are
// feature modules.
func (m Manifest) ModuleType() ModuleType {
	module := findChild(m.Root(), "module")
	if module == nil {
		return FeatureModule
	}
	if a := findAttribute(module, DistributionNamespace, "type"); a != nil {
		switch a.Value {
		case "asset-pack":
			return AssetModule
		case "sdk":
			return SdkModule
		}
	}
	return FeatureModule
}

// DeliveryMode is how a module is delivered to devices.
type DeliveryMode int

const (
	InstallTimeDelivery DeliveryMode = iota
	OnDemandDelivery
	ConditionalDelivery
)

func (d DeliveryMode) String() string {
	switch d {
	case OnDemandDelivery:
		return "on-demand"
	case ConditionalDelivery:
		return "conditional"
	default:
		return "install-time"
	}
}

func (d DeliveryMode) Proto() bp.DeliveryType {
	switch d {
	case OnDemandDelivery:
		return bp.DeliveryType_ON_DEMAND
	default:
		return bp.DeliveryType_INSTALL_TIME
	}
}

// DeliveryMode reads the dist:delivery declaration; modules without one are
// delivered at install time.
func (m Manifest) DeliveryMode() DeliveryMode {
	module := findChild(m.Root(), "module")
	delivery := findChild(module, "delivery")
	if delivery == nil {
		// Legacy onDemand attribute.
		if a := findAttribute(module, DistributionNamespace, "onDemand"); a != nil && a.Value == "true" {
			return OnDemandDelivery
		}
		return InstallTimeDelivery
	}
	if it := findChild(delivery, "install-time"); it != nil {
		if findChild(it, "conditions") != nil {
			return ConditionalDelivery
		}
		return InstallTimeDelivery
	}
	if findChild(delivery, "on-demand") != nil {
		return OnDemandDelivery
	}
	return InstallTimeDelivery
}

// ModuleConditions builds the conditional-delivery targeting of a module
// from its min-sdk and user-countries conditions.
func (m Manifest) ModuleConditions() *bp.ModuleTargeting {
	module := findChild(m.Root(), "module")
	delivery := findChild(module, "delivery")
	it := findChild(delivery, "install-time")
	conditions := findChild(it, "conditions")
	if conditions == nil {
		return nil
	}
	t := new(bp.ModuleTargeting)
	if minSdk := findChild(conditions, "min-sdk"); minSdk != nil {
		if a := findAttribute(minSdk, DistributionNamespace, "value"); a != nil {
			if v, err := strconv.ParseInt(a.Value, 10, 32); err == nil {
				t.SdkVersionTargeting = &bp.SdkVersionTargeting{
					Value: []*bp.SdkVersion{{Min: &bp.Int32Value{Value: int32(v)}}},
				}
			}
		}
	}
	if userCountries := findChild(conditions, "user-countries"); userCountries != nil {
		uct := new(bp.UserCountriesTargeting)
		if a := findAttribute(userCountries, DistributionNamespace, "exclude"); a != nil && a.Value == "true" {
			uct.Exclude = true
		}
		for _, c := range userCountries.Child {
			if c.Element != nil && c.Element.Name == "country" {
				if a := findAttribute(c.Element, DistributionNamespace, "code"); a != nil {
					uct.CountryCodes = append(uct.CountryCodes, a.Value)
				}
			}
		}
		t.UserCountriesTargeting = uct
	}
	return t
}
