package knit

// Component represents a single wiring participant extracted by the host.
type Component struct {
	Package      string        `json:"packageName" yaml:"packageName"`                     // declaring package
	Name         string        `json:"className" yaml:"className"`                         // simple class name
	Type         ComponentType `json:"componentType" yaml:"componentType"`                 // participation kind
	SourceFile   string        `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`   // origin file, optional
	Dependencies []Dependency  `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Providers    []Provider    `json:"providers,omitempty" yaml:"providers,omitempty"`
	Issues       []Issue       `json:"issues,omitempty" yaml:"issues,omitempty"` // findings attached by the extraction side
	Meta         Meta          `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ID returns the canonical component identifier.
func (c *Component) ID() string {
	return ComponentID(c.Package, c.Name)
}

// Clone creates a deep copy of the component.
func (c *Component) Clone() Component {
	out := *c
	if c.Dependencies != nil {
		out.Dependencies = make([]Dependency, len(c.Dependencies))
		copy(out.Dependencies, c.Dependencies)
	}
	if c.Providers != nil {
		out.Providers = make([]Provider, len(c.Providers))
		copy(out.Providers, c.Providers)
	}
	if c.Issues != nil {
		out.Issues = make([]Issue, 0, len(c.Issues))
		for i := range c.Issues {
			out.Issues = append(out.Issues, c.Issues[i].Clone())
		}
	}
	if c.Meta != nil {
		out.Meta = make(Meta, len(c.Meta))
		for k, v := range c.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

// Dependency represents a declared requirement of a component.
type Dependency struct {
	Property   string `json:"property" yaml:"property"`                       // injection point name
	TargetType string `json:"targetType" yaml:"targetType"`                   // required type
	Named      bool   `json:"named,omitempty" yaml:"named,omitempty"`         // qualifier participates in matching
	Qualifier  string `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	Factory    bool   `json:"factory,omitempty" yaml:"factory,omitempty"`     // injected as a factory
	Loadable   bool   `json:"loadable,omitempty" yaml:"loadable,omitempty"`   // injected lazily
	Singleton  bool   `json:"singleton,omitempty" yaml:"singleton,omitempty"` // expects singleton scope
}

// Key returns the provider-index key the dependency resolves against.
func (d *Dependency) Key() string {
	if d.Named {
		return TypeKey(d.TargetType, d.Qualifier)
	}
	return TypeKey(d.TargetType, "")
}

// Provider represents a provisioning method declared by a component.
type Provider struct {
	Method       string `json:"method" yaml:"method"`                                   // provider method name
	ReturnType   string `json:"returnType" yaml:"returnType"`                           // concrete return type
	ProvidesType string `json:"providesType,omitempty" yaml:"providesType,omitempty"`   // interface override, optional
	Named        bool   `json:"named,omitempty" yaml:"named,omitempty"`
	Qualifier    string `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	Singleton    bool   `json:"singleton,omitempty" yaml:"singleton,omitempty"`
	IntoSet      bool   `json:"intoSet,omitempty" yaml:"intoSet,omitempty"`
	IntoList     bool   `json:"intoList,omitempty" yaml:"intoList,omitempty"`
	IntoMap      bool   `json:"intoMap,omitempty" yaml:"intoMap,omitempty"`
}

// ProvisionType returns the type the provider is indexed under, the declared
// interface when present, otherwise the concrete return type.
func (p *Provider) ProvisionType() string {
	if p.ProvidesType != "" {
		return p.ProvidesType
	}
	return p.ReturnType
}

// Key returns the provider-index key the provider registers under.
func (p *Provider) Key() string {
	if p.Named {
		return TypeKey(p.ProvisionType(), p.Qualifier)
	}
	return TypeKey(p.ProvisionType(), "")
}

// Collection reports whether the provider contributes to a multi-binding.
func (p *Provider) Collection() bool {
	return p.IntoSet || p.IntoList || p.IntoMap
}
