package schema

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/offset/errors"
)

type fileDoc struct {
	Structs []fileStruct `yaml:"structs"`
}

type fileStruct struct {
	Size   *uint32     `yaml:"size"`
	Name   string      `yaml:"name"`
	Fields []fileField `yaml:"fields"`
}

type fileField struct {
	Offset *uint32 `yaml:"offset"`
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
}

// Parse reads every structure declared in a YAML schema stream. Structures
// from all "---" separated documents are combined in order.
func Parse(data []byte) ([]*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc fileDoc
	for n := 0; ; n++ {
		var next fileDoc
		if err := dec.Decode(&next); err != nil {
			if err != io.EOF {
				return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "decode schema document")
			}
			if n == 0 {
				return nil, errors.InvalidInput(errors.PhaseParse, nil, "empty schema document")
			}
			break
		}
		doc.Structs = append(doc.Structs, next.Structs...)
	}

	names := make(map[string]struct{}, len(doc.Structs))
	out := make([]*Schema, 0, len(doc.Structs))
	for i, fs := range doc.Structs {
		if _, dup := names[fs.Name]; dup {
			return nil, errors.InvalidInput(errors.PhaseParse, []string{fs.Name}, "structure declared more than once")
		}
		names[fs.Name] = struct{}{}

		s, err := fs.build(i)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (fs fileStruct) build(index int) (*Schema, error) {
	if fs.Name == "" {
		return nil, errors.InvalidInput(errors.PhaseParse, []string{"structs[" + strconv.Itoa(index) + "]"}, "missing name")
	}

	b := New(fs.Name)
	for i, ff := range fs.Fields {
		path := []string{fs.Name, ff.Name}
		if ff.Name == "" {
			path = []string{fs.Name, "fields[" + strconv.Itoa(i) + "]"}
		}
		if ff.Offset == nil {
			return nil, errors.InvalidInput(errors.PhaseParse, path, "missing offset")
		}
		t, err := ParseType(ff.Type)
		if err != nil {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Path(path...).
				Type(ff.Type).
				Cause(err).
				Build()
		}
		b.Field(*ff.Offset, ff.Name, t)
	}
	if fs.Size != nil {
		b.Size(*fs.Size)
	}
	return b.Build()
}

// Load reads a YAML schema file.
func Load(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read schema file", err)
	}
	return Parse(data)
}

// Find returns the schema called name.
func Find(schemas []*Schema, name string) (*Schema, error) {
	for _, s := range schemas {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseParse, "structure "+strconv.Quote(name))
}
