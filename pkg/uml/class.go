package uml

import (
	"strings"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// Class is a class, interface or object declaration of a snapshot.
type Class struct {
	Name       string
	File       string
	Superclass string
	Interfaces []string
	Location   location.Info
	operations []*Operation
	Abstract   bool
	Interface  bool
}

// NewClass creates a class with the given qualified name declared in file.
func NewClass(name, file string) *Class {
	return &Class{Name: name, File: file}
}

// AddOperation appends op and records c as its owner.
func (c *Class) AddOperation(op *Operation) {
	op.ClassName = c.Name
	c.operations = append(c.operations, op)
}

// Operations returns the operations in source order.
func (c *Class) Operations() []*Operation {
	return c.operations
}

// OperationsNamed returns the operations called name.
func (c *Class) OperationsNamed(name string) []*Operation {
	var ops []*Operation

	for _, op := range c.operations {
		if op.Name == name {
			ops = append(ops, op)
		}
	}

	return ops
}

// FindOperation returns the first operation satisfying match, or nil.
func (c *Class) FindOperation(match func(*Operation) bool) *Operation {
	for _, op := range c.operations {
		if match(op) {
			return op
		}
	}

	return nil
}

// SimpleName returns the class name without its package qualifier.
func (c *Class) SimpleName() string {
	return SimpleName(c.Name)
}

// Supertypes returns the superclass followed by the implemented interfaces.
func (c *Class) Supertypes() []string {
	var supers []string

	if c.Superclass != "" {
		supers = append(supers, c.Superclass)
	}

	return append(supers, c.Interfaces...)
}

func (c *Class) String() string {
	return c.Name
}

// SimpleName strips the package qualifier from a class name.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}
