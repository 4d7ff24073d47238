package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbind/internal/naming"
	"github.com/erraggy/oasbind/oaserrors"
)

// Config is everything a generation run needs besides the document.
// It is built once and passed down explicitly; nothing reads package state.
type Config struct {
	// Input is the document path used when no input is given on the command line.
	Input string `yaml:"input,omitempty" json:"input,omitempty"`

	Output      OutputConfig     `yaml:"output" json:"output"`
	Annotations AnnotationConfig `yaml:"annotations" json:"annotations"`

	// TypesQualifier is the package alias of the generated wire types that
	// request bodies resolve into (e.g. "Def").
	TypesQualifier string `yaml:"types_qualifier" json:"types_qualifier" validate:"required,goident"`

	// Tiers are the authorization tiers, one per document tag, in emission order.
	Tiers []TierConfig `yaml:"tiers" json:"tiers" validate:"required,min=1,unique=Name,dive"`

	// AuthKinds are the accepted x-authentication-type values. Each is a
	// field of the backend's per-tier handler set.
	AuthKinds []string `yaml:"auth_kinds" json:"auth_kinds" validate:"unique,dive,goident"`

	// CapsSegments are name segments rendered fully upper-case ("id" -> "ID").
	CapsSegments []string `yaml:"caps_segments,omitempty" json:"caps_segments,omitempty" validate:"dive,required"`

	Packages PackageConfig `yaml:"packages" json:"packages"`

	// Imports maps each package alias used by generated code to its import path.
	Imports map[string]string `yaml:"imports" json:"imports" validate:"dive,keys,goident,endkeys,required"`

	// RouteTable adds a static route table and registerHandlers to the dispatch artifact.
	RouteTable bool `yaml:"route_table" json:"route_table"`

	// Header is extra comment text placed under the generated-code banner.
	Header string `yaml:"header,omitempty" json:"header,omitempty"`
}

// OutputConfig holds the three artifact paths.
type OutputConfig struct {
	Dispatch   string `yaml:"dispatch" json:"dispatch" validate:"required"`
	Routing    string `yaml:"routing" json:"routing" validate:"required"`
	Interfaces string `yaml:"interfaces" json:"interfaces" validate:"required"`
}

// AnnotationConfig names the extension keys read from each operation.
type AnnotationConfig struct {
	CoreFunction       string `yaml:"core_function" json:"core_function" validate:"required,startswith=x-"`
	DataType           string `yaml:"data_type" json:"data_type" validate:"required,startswith=x-"`
	AuthType           string `yaml:"auth_type" json:"auth_type" validate:"required,startswith=x-"`
	RequestBody        string `yaml:"request_body" json:"request_body" validate:"required,startswith=x-"`
	ConversionFunction string `yaml:"conversion_function" json:"conversion_function" validate:"required,startswith=x-"`
}

// TierConfig describes one authorization tier.
type TierConfig struct {
	// Name matches the document tag and names the interface.
	Name string `yaml:"name" json:"name" validate:"required,goident"`
	// Description fills the interface doc comment.
	Description string `yaml:"description" json:"description"`
	// Authenticated tiers have a handler set on the adapter's auth field.
	Authenticated bool `yaml:"authenticated" json:"authenticated"`
}

// PackageConfig holds the package clauses of the emitted files.
type PackageConfig struct {
	Web        string `yaml:"web" json:"web" validate:"required,goident"`
	Interfaces string `yaml:"interfaces" json:"interfaces" validate:"required,goident"`
}

// Import aliases referenced by generated code.
const (
	aliasModel     = "model"
	aliasCore      = "core"
	aliasUtils     = "utils"
	aliasMux       = "mux"
	aliasTokenAuth = "tokenauth"
	aliasErrors    = "errors"
	aliasLogUtils  = "logutils"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dispatch:   filepath.Join("driver", "web", "adapter_helper.go"),
			Routing:    filepath.Join("driver", "web", "apis.go"),
			Interfaces: filepath.Join("core", "interfaces", "core_gen.go"),
		},
		Annotations: AnnotationConfig{
			CoreFunction:       "x-core-function",
			DataType:           "x-data-type",
			AuthType:           "x-authentication-type",
			RequestBody:        "x-request-body",
			ConversionFunction: "x-conversion-function",
		},
		TypesQualifier: "Def",
		Tiers: []TierConfig{
			{Name: "Default", Description: "default"},
			{Name: "Client", Description: "client", Authenticated: true},
			{Name: "Admin", Description: "administrative", Authenticated: true},
		},
		AuthKinds: []string{"User", "Standard", "Authenticated", "Permissions"},
		Packages:  PackageConfig{Web: "web", Interfaces: "interfaces"},
		Imports: map[string]string{
			aliasModel:     "app/core/model",
			"Def":          "app/driver/web/docs/gen",
			aliasCore:      "app/core",
			aliasUtils:     "app/utils",
			aliasMux:       "github.com/gorilla/mux",
			aliasTokenAuth: "github.com/rokwire/core-auth-library-go/v3/tokenauth",
			aliasErrors:    "github.com/rokwire/logging-library-go/v2/errors",
			aliasLogUtils:  "github.com/rokwire/logging-library-go/v2/logutils",
		},
		RouteTable: true,
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// Fields absent from the file keep their defaults; the imports map is
// merged key by key.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "cannot read file", Cause: err}
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "invalid YAML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
			return naming.IsIdentifier(fl.Field().String())
		})
	})
	return validate
}

// Validate checks the configuration. Failures are returned as a
// *oaserrors.ConfigError naming the first offending field.
func (c *Config) Validate() error {
	if c == nil {
		return &oaserrors.ConfigError{Option: "config", Message: "configuration is nil"}
	}
	if err := configValidator().Struct(c); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) && len(valErrs) > 0 {
			ve := valErrs[0]
			return &oaserrors.ConfigError{
				Option:  strings.TrimPrefix(ve.Namespace(), "Config."),
				Value:   ve.Value(),
				Message: formatValidationError(ve),
				Cause:   err,
			}
		}
		return &oaserrors.ConfigError{Option: "config", Cause: err}
	}

	outputs := map[string]string{}
	for _, o := range []struct{ name, path string }{
		{"output.dispatch", c.Output.Dispatch},
		{"output.routing", c.Output.Routing},
		{"output.interfaces", c.Output.Interfaces},
	} {
		clean := filepath.Clean(o.path)
		if prev, dup := outputs[clean]; dup {
			return &oaserrors.ConfigError{
				Option:  o.name,
				Value:   o.path,
				Message: "same path as " + prev,
			}
		}
		outputs[clean] = o.name
	}

	return nil
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", ve.Param())
	case "unique":
		return "entries must be unique"
	case "startswith":
		return fmt.Sprintf("must start with %q", ve.Param())
	case "goident":
		return "must be a Go identifier"
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// Tier returns the tier named name, or false.
func (c *Config) Tier(name string) (TierConfig, bool) {
	for _, t := range c.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return TierConfig{}, false
}

// IsAuthKind reports whether kind is a configured authentication type.
func (c *Config) IsAuthKind(kind string) bool {
	for _, k := range c.AuthKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Tiers = append([]TierConfig(nil), c.Tiers...)
	out.AuthKinds = append([]string(nil), c.AuthKinds...)
	out.CapsSegments = append([]string(nil), c.CapsSegments...)
	out.Imports = make(map[string]string, len(c.Imports))
	for k, v := range c.Imports {
		out.Imports[k] = v
	}
	return &out
}
