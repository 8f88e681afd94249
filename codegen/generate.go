package codegen

import (
	"go/token"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/wippyai/offset/errors"
	"github.com/wippyai/offset/layout"
	"github.com/wippyai/offset/schema"
)

const (
	// DefaultPackage is the package clause used when Config.Package is empty.
	DefaultPackage = "layouts"
	// DefaultHeader marks the output as generated.
	DefaultHeader = "Code generated by offsetc. DO NOT EDIT."
)

// Config holds generator configuration.
type Config struct {
	// Package is the package name of the generated file.
	Package string
	// Header is the leading comment, one line per line of text.
	Header string
}

type fileView struct {
	Header  string
	Package string
	Structs []*structView
}

type structView struct {
	Name      string
	GoName    string
	PlanVar   string
	Size      uint32
	Declared  bool
	Members   []memberView
	Fields    []*fieldView
	Accessors []*fieldView
}

type memberView struct {
	Padding bool
	Size    uint32
	Field   *fieldView
}

type fieldView struct {
	Name    string
	GoName  string
	Storage string
	Type    string
	GoType  string
	Tag     string
	Offset  uint32
	Size    uint32
	Native  bool
	Getter  string
	Setter  string
}

// Generate returns a formatted Go source file declaring one struct per
// schema, in order.
func Generate(cfg Config, schemas ...*schema.Schema) ([]byte, error) {
	pkg := cfg.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	if !token.IsIdentifier(pkg) || pkg == "_" {
		return nil, errors.InvalidInput(errors.PhaseGenerate, nil, "package name "+strconv.Quote(pkg)+" is not an identifier")
	}
	header := cfg.Header
	if header == "" {
		header = DefaultHeader
	}

	file := &fileView{
		Header:  commentLines(header),
		Package: pkg,
	}

	types := make(map[string]string)
	for _, s := range schemas {
		if s == nil {
			return nil, errors.InvalidInput(errors.PhaseGenerate, nil, "nil schema")
		}
		plan, err := layout.Build(s)
		if err != nil {
			return nil, err
		}
		sv, err := newStructView(s, plan)
		if err != nil {
			return nil, err
		}
		if prev, dup := types[sv.GoName]; dup {
			return nil, errors.New(errors.PhaseGenerate, errors.KindDuplicateField).
				Path(s.Name()).
				Detail("Go type %s already declared for %s", sv.GoName, prev).
				Build()
		}
		types[sv.GoName] = s.Name()
		file.Structs = append(file.Structs, sv)
	}

	src, err := execute(fileTemplate, file)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "execute template")
	}
	out, err := imports.Process(pkg+".go", src, nil)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "format generated source")
	}

	Logger().Debug("generated layouts",
		zap.String("package", pkg),
		zap.Int("structs", len(file.Structs)),
		zap.Int("bytes", len(out)))

	return out, nil
}

func newStructView(s *schema.Schema, plan *layout.Plan) (*structView, error) {
	goName := exportedName(s.Name())
	declared, sized := s.DeclaredSize()
	sv := &structView{
		Name:     s.Name(),
		GoName:   goName,
		PlanVar:  lowerFirst(goName) + "Plan",
		Size:     declared,
		Declared: sized,
	}

	align := structAlign(plan.Size)
	used := map[string]string{"String": "String"}
	claim := func(id, field string) error {
		if prev, dup := used[id]; dup {
			return errors.New(errors.PhaseGenerate, errors.KindDuplicateField).
				Path(s.Name(), field).
				Detail("Go identifier %s already used by %s", id, prev).
				Build()
		}
		used[id] = field
		return nil
	}

	for _, seg := range plan.Segments {
		if seg.IsPadding() {
			sv.Members = append(sv.Members, memberView{Padding: true, Size: seg.Length})
			continue
		}

		f := seg.Field
		gv, ok := goValueOf(f.Type)
		if !ok {
			return nil, errors.New(errors.PhaseGenerate, errors.KindUnsupported).
				Path(s.Name(), f.Name).
				Type(f.Type.Name).
				Detail("field type has no Go representation").
				Build()
		}

		fv := &fieldView{
			Name:   f.Name,
			GoName: exportedName(f.Name),
			Type:   f.Type.Name,
			GoType: gv.typ,
			Tag:    "`layout:" + strconv.Quote(f.Name) + "`",
			Offset: f.Offset,
			Size:   f.Size,
			Native: gv.align <= align && f.Offset%gv.align == 0,
		}

		if err := claim(fv.GoName, f.Name); err != nil {
			return nil, err
		}
		if !fv.Native {
			fv.Storage = unexportedName(fv.GoName)
			fv.Getter = gv.getter(fv.Storage)
			fv.Setter = gv.setter(fv.Storage)
			if err := claim("Set"+fv.GoName, f.Name); err != nil {
				return nil, err
			}
			if err := claim(fv.Storage, f.Name); err != nil {
				return nil, err
			}
			sv.Accessors = append(sv.Accessors, fv)
		}

		sv.Fields = append(sv.Fields, fv)
		sv.Members = append(sv.Members, memberView{Field: fv})
	}
	return sv, nil
}
