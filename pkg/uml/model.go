package uml

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateClass is returned when a model receives two classes with the same name.
var ErrDuplicateClass = errors.New("duplicate class")

// Model is the declaration model of one snapshot. It is populated by a
// front-end and read concurrently afterwards.
type Model struct {
	byName    map[string]*Class
	hierarchy *Hierarchy
	Language  string
	classes   []*Class
	once      sync.Once
}

// NewModel creates an empty model.
func NewModel(language string) *Model {
	return &Model{Language: language, byName: make(map[string]*Class)}
}

// AddClass appends c. Adding after the hierarchy was first queried is not supported.
func (m *Model) AddClass(c *Class) error {
	if _, ok := m.byName[c.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, c.Name)
	}

	m.byName[c.Name] = c
	m.classes = append(m.classes, c)

	return nil
}

// Classes returns the classes in source order.
func (m *Model) Classes() []*Class {
	return m.classes
}

// Class returns the class called name, or nil.
func (m *Model) Class(name string) *Class {
	return m.byName[name]
}

// Hierarchy returns the generalization graph, built on first use.
func (m *Model) Hierarchy() *Hierarchy {
	m.once.Do(func() {
		m.hierarchy = NewHierarchy(m.classes)
	})

	return m.hierarchy
}

// IsSubtype reports whether sub strictly specializes super in this model.
func (m *Model) IsSubtype(sub, super string) bool {
	return m.Hierarchy().IsSubtype(sub, super)
}

// Operations returns every operation of every class in source order.
func (m *Model) Operations() []*Operation {
	var ops []*Operation

	for _, c := range m.classes {
		ops = append(ops, c.Operations()...)
	}

	return ops
}
