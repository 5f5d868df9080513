package declare

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// Sentinel errors for declaration files.
var (
	ErrUnknownFormat   = errors.New("unknown declaration format")
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownKind     = errors.New("screen kind is not registered")
	ErrInvalidResource = errors.New("resource must be a path or false")
	ErrInvalid         = errors.New("invalid declaration")
)

// Format is a declaration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Document is a decoded declaration file.
type Document struct {
	Screens []Declaration `toml:"screen" yaml:"screens" validate:"required,min=1,dive"`
}

// Declaration is one screen as written in a file.
type Declaration struct {
	Name     string   `toml:"name" yaml:"name" validate:"required,screenname"`
	Kind     string   `toml:"kind" yaml:"kind" validate:"omitempty,screenname"`
	Children []string `toml:"children" yaml:"children" validate:"dive,required,screenname"`
	Parent   string   `toml:"parent" yaml:"parent" validate:"omitempty,screenname"`
	Resource any      `toml:"resource" yaml:"resource"`
}

var screenNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("screenname", func(fl validator.FieldLevel) bool {
		return screenNamePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register screenname validation: %v", err))
	}
	return v
}

// Decode parses and validates a declaration document.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml: %w: %s", ErrUnknownField, undecoded[0].String())
		}
	case FormatYAML:
		if err := checkYAMLKeys(data); err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			var typeErr *yaml.TypeError
			if errors.As(err, &typeErr) {
				return nil, fmt.Errorf("decode yaml: %w: %w", ErrInvalid, err)
			}
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &doc, nil
}

var (
	documentKeys    = tagKeys(reflect.TypeFor[Document](), "yaml")
	declarationKeys = tagKeys(reflect.TypeFor[Declaration](), "yaml")
)

func tagKeys(t reflect.Type, tag string) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" {
			keys[name] = true
		}
	}
	return keys
}

// checkYAMLKeys rejects keys the document and screen mappings do not
// define. yaml.v3 reports unknown fields and type mismatches with the same
// *yaml.TypeError, so keys are checked on the node tree first. Syntax
// errors are left to the decoder.
func checkYAMLKeys(data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if !documentKeys[key.Value] {
			return fmt.Errorf("decode yaml: %w: %q (line %d)", ErrUnknownField, key.Value, key.Line)
		}
		if value.Kind != yaml.SequenceNode {
			continue
		}
		for _, screen := range value.Content {
			if screen.Kind != yaml.MappingNode {
				continue
			}
			for j := 0; j+1 < len(screen.Content); j += 2 {
				if k := screen.Content[j]; !declarationKeys[k.Value] {
					return fmt.Errorf("decode yaml: %w: %q (line %d)", ErrUnknownField, k.Value, k.Line)
				}
			}
		}
	}
	return nil
}

// Entries resolves every declaration through catalog.
func (d *Document) Entries(catalog Catalog) ([]schema.Entry, error) {
	entries := make([]schema.Entry, 0, len(d.Screens))
	for _, decl := range d.Screens {
		e, err := decl.entry(catalog)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (decl Declaration) entry(catalog Catalog) (schema.Entry, error) {
	kind := decl.Kind
	if kind == "" {
		kind = decl.Name
	}
	f, ok := catalog.Lookup(kind)
	if !ok {
		return schema.Entry{}, fmt.Errorf("screen %q: %w: %s", decl.Name, ErrUnknownKind, kind)
	}

	loc, err := locator(decl.Resource)
	if err != nil {
		return schema.Entry{}, fmt.Errorf("screen %q: %w", decl.Name, err)
	}

	return schema.Entry{
		Name:       decl.Name,
		Model:      f.Model,
		Controller: f.Controller,
		View:       f.View,
		Children:   decl.Children,
		Parent:     decl.Parent,
		Resource:   loc,
	}, nil
}

// locator maps the raw resource value: missing stays absent, false is an
// explicit none, and a non-empty string is a path.
func locator(raw any) (schema.Locator, error) {
	switch v := raw.(type) {
	case nil:
		return schema.Locator{}, nil
	case bool:
		if v {
			return schema.Locator{}, ErrInvalidResource
		}
		return schema.NoLocator(), nil
	case string:
		if v == "" {
			return schema.Locator{}, ErrInvalidResource
		}
		return schema.PathLocator(v), nil
	default:
		return schema.Locator{}, fmt.Errorf("%w: got %T", ErrInvalidResource, raw)
	}
}

// LoadFile reads a declaration file and resolves it through catalog.
func LoadFile(path string, catalog Catalog) ([]schema.Entry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read declarations: %w", err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.Entries(catalog)
}

// Source returns a schema.Source that re-reads path on every call, for use
// with schema.Cache.
func Source(path string, catalog Catalog) schema.Source {
	return func() ([]schema.Entry, error) {
		return LoadFile(path, catalog)
	}
}
