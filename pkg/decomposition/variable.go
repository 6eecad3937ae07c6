package decomposition

import "github.com/Sumatoshi-tech/refminer/pkg/location"

// VariableDeclaration is a local variable, parameter or loop variable
// introduced inside an operation body.
type VariableDeclaration struct {
	Name        string        `json:"name"                  yaml:"name"`
	Type        string        `json:"type,omitempty"        yaml:"type,omitempty"`
	Initializer string        `json:"initializer,omitempty" yaml:"initializer,omitempty"`
	Scope       location.Info `json:"scope"                 yaml:"scope"`
	Location    location.Info `json:"location"              yaml:"location"`
	Parameter   bool          `json:"parameter,omitempty"   yaml:"parameter,omitempty"`
	Varargs     bool          `json:"varargs,omitempty"     yaml:"varargs,omitempty"`
}

// VisibleAt reports whether the declaration is in scope at loc.
func (d *VariableDeclaration) VisibleAt(loc location.Info) bool {
	return d.Scope.Subsumes(loc)
}

func (d *VariableDeclaration) String() string {
	if d.Type == "" {
		return d.Name
	}

	return d.Name + " : " + d.Type
}

func findDeclaration(decls []*VariableDeclaration, name string) *VariableDeclaration {
	for _, decl := range decls {
		if decl.Name == name {
			return decl
		}
	}

	return nil
}
