package generator

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backendModule is a minimal module providing every package and helper the
// generated artifacts reference. The three artifacts are written into it
// and the whole module must build.
var backendModule = map[string]string{
	"go.mod": "module app\n\ngo 1.22\n",

	"stub/logutils/logutils.go": `package logutils

import "fmt"

type MessageActionType string

type MessageDataStatus string

type MessageDataType string

const (
	ActionGet   MessageActionType = "get"
	ActionApply MessageActionType = "apply"

	StatusInvalid MessageDataStatus = "invalid"

	TypePathParam  MessageDataType = "path param"
	TypeQueryParam MessageDataType = "query param"
)

type MessageArgs interface {
	String() string
}

type FieldArgs map[string]interface{}

func (f *FieldArgs) String() string { return fmt.Sprint(*f) }

type StringArgs string

func (s StringArgs) String() string { return string(s) }
`,

	"stub/errors/errors.go": `package errors

import (
	"fmt"

	"app/stub/logutils"
)

func WrapErrorAction(action logutils.MessageActionType, dataType logutils.MessageDataType, args logutils.MessageArgs, err error) error {
	return fmt.Errorf("%s %s: %w", action, dataType, err)
}

func ErrorData(status logutils.MessageDataStatus, dataType logutils.MessageDataType, args logutils.MessageArgs) error {
	return fmt.Errorf("%s %s", status, dataType)
}
`,

	"stub/tokenauth/tokenauth.go": `package tokenauth

type Claims struct {
	Subject string
}

type Handler interface {
	Check(token string) (*Claims, error)
}

type Handlers struct {
	User          Handler
	Standard      Handler
	Authenticated Handler
	Permissions   Handler
}
`,

	"stub/mux/mux.go": `package mux

import "net/http"

type Router struct{}

type Route struct{}

func (r *Router) HandleFunc(path string, f func(http.ResponseWriter, *http.Request)) *Route {
	return &Route{}
}

func (r *Route) Methods(methods ...string) *Route { return r }
`,

	"utils/utils.go": `package utils

import "fmt"

func GetValue[T any](params map[string]interface{}, key string, required bool) (T, error) {
	var zero T
	raw, ok := params[key]
	if !ok {
		if required {
			return zero, fmt.Errorf("missing %s", key)
		}
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}
`,

	"core/model/item.go": `package model

import "app/stub/logutils"

const TypeItem logutils.MessageDataType = "item"

type Item struct {
	ID string
}
`,

	"core/app.go": `package core

import "app/core/interfaces"

type Application struct {
	Default interfaces.Default
	Client  interfaces.Client
	Admin   interfaces.Admin
}
`,

	"driver/web/docs/gen/types.go": `package gen

type AdminReqUpdateItem struct {
	Name string
}
`,

	"driver/web/adapter.go": `package web

import (
	"log/slog"
	"net/http"

	"app/core/model"
	Def "app/driver/web/docs/gen"
	"app/stub/logutils"
	"app/stub/tokenauth"
)

type Adapter struct {
	auth struct {
		client tokenauth.Handlers
		admin  tokenauth.Handlers
	}
	apisHandler APIsHandler
	paths       map[string]string
	logger      *slog.Logger
}

type apiHandler[D apiDataType, B requestDataType] struct {
	authorization   tokenauth.Handler
	conversionFunc  func(*tokenauth.Claims, *B) (*D, error)
	messageDataType logutils.MessageDataType
	coreHandler     interface{}
}

func setCoreHandler[D apiDataType, B requestDataType](handler *apiHandler[D, B], coreHandler interface{}, method string, tag string, coreFunc string) error {
	handler.coreHandler = coreHandler
	return nil
}

func handleRequest[D apiDataType, B requestDataType](handler *apiHandler[D, B], paths map[string]string, logger *slog.Logger) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func itemFromDefAdminReqUpdate(claims *tokenauth.Claims, item *Def.AdminReqUpdateItem) (*model.Item, error) {
	return &model.Item{}, nil
}
`,
}

// TestGeneratedArtifactsCompile builds the catalog artifacts against stub
// backend packages, catching missing imports and signatures that disagree
// between the routing stubs and the interfaces.
func TestGeneratedArtifactsCompile(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a temporary module")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not found")
	}

	root := t.TempDir()
	for name, content := range backendModule {
		target := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o750))
		require.NoError(t, os.WriteFile(target, []byte(content), 0o600))
	}

	cfg := DefaultConfig()
	cfg.Output = OutputConfig{
		Dispatch:   filepath.Join(root, "driver", "web", "adapter_helper.go"),
		Routing:    filepath.Join(root, "driver", "web", "apis.go"),
		Interfaces: filepath.Join(root, "core", "interfaces", "core_gen.go"),
	}
	for alias, path := range map[string]string{
		aliasMux:       "app/stub/mux",
		aliasTokenAuth: "app/stub/tokenauth",
		aliasErrors:    "app/stub/errors",
		aliasLogUtils:  "app/stub/logutils",
	} {
		cfg.Imports[alias] = path
	}

	result, err := GenerateWithOptions(WithFilePath("testdata/catalog.yaml"), WithConfig(cfg))
	require.NoError(t, err)
	require.False(t, result.HasCriticalIssues())
	require.NoError(t, result.WriteFiles())

	cmd := exec.Command(goBin, "build", "./...")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod", "GOTOOLCHAIN=local")
	output, err := cmd.CombinedOutput()
	assert.NoError(t, err, "generated artifacts should compile.\nCompiler output:\n%s", output)
}
