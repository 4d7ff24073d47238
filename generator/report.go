package generator

import (
	"github.com/erraggy/oasbind/internal/issues"
)

// Report is a serializable view of a run: what was bound and how.
type Report struct {
	Source        string           `json:"source" yaml:"source"`
	Version       string           `json:"openapi" yaml:"openapi"`
	DataTypes     []string         `json:"data_types" yaml:"data_types"`
	RequestBodies []RequestBody    `json:"request_bodies,omitempty" yaml:"request_bodies,omitempty"`
	Endpoints     []EndpointReport `json:"endpoints" yaml:"endpoints"`
	Counts        issues.Counts    `json:"issue_counts" yaml:"issue_counts"`
}

// EndpointReport describes one bound endpoint and its rendered signatures.
type EndpointReport struct {
	Method             string `json:"method" yaml:"method"`
	Path               string `json:"path" yaml:"path"`
	Tag                string `json:"tag" yaml:"tag"`
	CoreFunction       string `json:"core_function" yaml:"core_function"`
	DataType           string `json:"data_type" yaml:"data_type"`
	Kind               string `json:"kind" yaml:"kind"`
	Shape              string `json:"shape" yaml:"shape"`
	AuthType           string `json:"auth_type,omitempty" yaml:"auth_type,omitempty"`
	BodyType           string `json:"body_type,omitempty" yaml:"body_type,omitempty"`
	ConversionFunction string `json:"conversion_function,omitempty" yaml:"conversion_function,omitempty"`
	Handler            string `json:"handler" yaml:"handler"`
	Outward            string `json:"outward" yaml:"outward"`
	Interface          string `json:"interface" yaml:"interface"`
}

// NewReport summarizes a generation result.
func NewReport(r *GenerateResult) *Report {
	rep := &Report{
		Source:  r.SourcePath,
		Version: r.SourceVersion,
		Counts:  issues.Count(r.Issues),
	}
	if r.Model != nil {
		rep.DataTypes = r.Model.DataTypes
		rep.RequestBodies = r.Model.RequestBodies
	}
	rep.Endpoints = make([]EndpointReport, 0, len(r.Contracts))
	for _, c := range r.Contracts {
		ep := c.Endpoint
		rep.Endpoints = append(rep.Endpoints, EndpointReport{
			Method:             ep.HTTPMethod(),
			Path:               ep.Path,
			Tag:                ep.Tag,
			CoreFunction:       ep.CoreFunction,
			DataType:           ep.DataType,
			Kind:               ep.Kind.String(),
			Shape:              ep.Shape.String(),
			AuthType:           ep.AuthType,
			BodyType:           c.BodyType,
			ConversionFunction: ep.ConversionFunction,
			Handler:            c.HandlerName,
			Outward:            c.Outward.String(),
			Interface:          ep.Tag + "." + c.Method + c.Inward.String(),
		})
	}
	return rep
}
