package report

import "go.trai.ch/classmeta/internal/core/domain"

type hierarchyDoc struct {
	Class     string     `json:"class"`
	Absent    bool       `json:"absent"`
	Container string     `json:"container,omitempty"`
	Levels    []levelDoc `json:"levels,omitempty"`
	Merged    *levelDoc  `json:"merged,omitempty"`
}

type levelDoc struct {
	Class      string      `json:"class"`
	Properties []memberDoc `json:"properties,omitempty"`
	Methods    []memberDoc `json:"methods,omitempty"`
	Files      []string    `json:"files,omitempty"`
}

type memberDoc struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type warmDoc struct {
	Classes  int      `json:"classes"`
	Resolved int      `json:"resolved"`
	Absent   int      `json:"absent"`
	Failed   []string `json:"failed"`
}

func newHierarchyDoc(class string, h domain.Hierarchy) hierarchyDoc {
	if h == nil {
		return hierarchyDoc{Class: class, Absent: true}
	}

	doc := hierarchyDoc{
		Class:     h.Name().String(),
		Container: string(h.Kind()),
		Levels:    make([]levelDoc, 0, h.Len()),
	}
	for _, l := range h.Levels() {
		doc.Levels = append(doc.Levels, newLevelDoc(l.Base(), true))
	}
	if m, ok := h.(*domain.MergeableHierarchyMetadata); ok && m.Len() > 1 {
		merged := newLevelDoc(m.Merged().ClassMetadata, false)
		doc.Merged = &merged
	}
	return doc
}

func newLevelDoc(m *domain.ClassMetadata, withFiles bool) levelDoc {
	doc := levelDoc{Class: m.Name().String()}
	for _, p := range m.Properties.All() {
		doc.Properties = append(doc.Properties, memberDoc{Name: p.Name, Attributes: p.Attributes})
	}
	for _, mm := range m.Methods.All() {
		doc.Methods = append(doc.Methods, memberDoc{Name: mm.Name, Attributes: mm.Attributes})
	}
	if withFiles {
		doc.Files = m.FileResources
	}
	return doc
}

func newWarmDoc(stats domain.WarmStats) warmDoc {
	failed := stats.Failed
	if failed == nil {
		failed = []string{}
	}
	return warmDoc{
		Classes:  stats.Classes,
		Resolved: stats.Resolved,
		Absent:   stats.Absent,
		Failed:   failed,
	}
}
