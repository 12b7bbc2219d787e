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

package bundle_proto

import "google.golang.org/protobuf/encoding/protowire"

// XmlNode is the proto XML encoding used for AndroidManifest.xml inside a
// bundle. A node is either an element or a text run.
type XmlNode struct {
	Element *XmlElement
	Text    string
}

func (m *XmlNode) GetElement() *XmlElement {
	if m == nil {
		return nil
	}
	return m.Element
}

func (m *XmlNode) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	if m.Element != nil {
		b = appendMessage(b, 1, m.Element)
	} else {
		b = appendString(b, 2, m.Text)
	}
	return b
}

func (m *XmlNode) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Element = new(XmlElement)
			return consumeMessage(data, m.Element)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(data, &m.Text)
		}
		return 0, nil
	})
}

type XmlElement struct {
	NamespaceUri         string
	Name                 string
	NamespaceDeclaration []*XmlNamespace
	Attribute            []*XmlAttribute
	Child                []*XmlNode
}

func (m *XmlElement) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}

func (m *XmlElement) GetAttribute() []*XmlAttribute {
	if m == nil {
		return nil
	}
	return m.Attribute
}

func (m *XmlElement) GetChild() []*XmlNode {
	if m == nil {
		return nil
	}
	return m.Child
}

func (m *XmlElement) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.NamespaceUri)
	b = appendString(b, 2, m.Name)
	for _, ns := range m.NamespaceDeclaration {
		b = appendMessage(b, 3, ns)
	}
	for _, a := range m.Attribute {
		b = appendMessage(b, 4, a)
	}
	for _, c := range m.Child {
		b = appendMessage(b, 5, c)
	}
	return b
}

func (m *XmlElement) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			return consumeString(data, &m.NamespaceUri)
		case 2:
			return consumeString(data, &m.Name)
		case 3:
			ns := new(XmlNamespace)
			n, err := consumeMessage(data, ns)
			if err == nil {
				m.NamespaceDeclaration = append(m.NamespaceDeclaration, ns)
			}
			return n, err
		case 4:
			a := new(XmlAttribute)
			n, err := consumeMessage(data, a)
			if err == nil {
				m.Attribute = append(m.Attribute, a)
			}
			return n, err
		case 5:
			c := new(XmlNode)
			n, err := consumeMessage(data, c)
			if err == nil {
				m.Child = append(m.Child, c)
			}
			return n, err
		}
		return 0, nil
	})
}

type XmlNamespace struct {
	Prefix string
	Uri    string
}

func (m *XmlNamespace) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.Prefix)
	b = appendString(b, 2, m.Uri)
	return b
}

func (m *XmlNamespace) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			return consumeString(data, &m.Prefix)
		case 2:
			return consumeString(data, &m.Uri)
		}
		return 0, nil
	})
}

type XmlAttribute struct {
	NamespaceUri string
	Name         string
	Value        string
	ResourceId   uint32
	CompiledItem *Item
}

func (m *XmlAttribute) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}

func (m *XmlAttribute) GetValue() string {
	if m == nil {
		return ""
	}
	return m.Value
}

func (m *XmlAttribute) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.NamespaceUri)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Value)
	b = appendUint32(b, 5, m.ResourceId)
	b = appendMessage(b, 6, m.CompiledItem)
	return b
}

func (m *XmlAttribute) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(data, &m.NamespaceUri)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(data, &m.Name)
		case num == 3 && typ == protowire.BytesType:
			return consumeString(data, &m.Value)
		case num == 5 && typ == protowire.VarintType:
			return consumeUint32(data, &m.ResourceId)
		case num == 6 && typ == protowire.BytesType:
			m.CompiledItem = new(Item)
			return consumeMessage(data, m.CompiledItem)
		}
		return 0, nil
	})
}
