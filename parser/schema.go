package parser

// Schema is the subset of a JSON Schema object that type derivation reads.
type Schema struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Type is a string in OAS 3.0 and may be a list in OAS 3.1
	// (e.g. [string, "null"]).
	Type       any                `yaml:"type,omitempty" json:"type,omitempty"`
	Format     string             `yaml:"format,omitempty" json:"format,omitempty"`
	Items      *Schema            `yaml:"items,omitempty" json:"items,omitempty"`
	Properties map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required   []string           `yaml:"required,omitempty" json:"required,omitempty"`
	Enum       []any              `yaml:"enum,omitempty" json:"enum,omitempty"`
	Nullable   bool               `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	// Extra holds the x- extension fields of the schema.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// PrimaryType returns the schema's effective type name. For a type list
// the first entry other than "null" wins. An empty string means the type
// is absent or not a string.
func (s *Schema) PrimaryType() string {
	if s == nil {
		return ""
	}
	switch t := s.Type.(type) {
	case string:
		return t
	case []any:
		for _, v := range t {
			if name, ok := v.(string); ok && name != "null" {
				return name
			}
		}
	case []string:
		for _, name := range t {
			if name != "null" {
				return name
			}
		}
	}
	return ""
}

// Extension returns the string value of an "x-" field on the schema.
func (s *Schema) Extension(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	return extensionString(s.Extra, key)
}
