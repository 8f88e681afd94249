package codegen

import (
	"bytes"
	"text/template"
)

var (
	fileTemplate = newTemplate("file", fileBody)
	_            = template.Must(fileTemplate.New("struct").Parse(structBody))
)

func newTemplate(name, body string) *template.Template {
	return template.Must(template.New(name).Delims("«", "»").Parse(body))
}

func execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const fileBody = `«.Header»

package «.Package»

import (
	"encoding/binary"
	"math"
	"reflect"
	"structs"

	"github.com/wippyai/offset/layout"
	"github.com/wippyai/offset/render"
	"github.com/wippyai/offset/schema"
	"github.com/wippyai/offset/verify"
)
«range .Structs»
«template "struct" .»
«- end»
`

const structBody = `
// «.GoName» realizes «.Name»«if .Declared» («printf "%#x" .Size» bytes)«end».
type «.GoName» struct {
	_ structs.HostLayout
«- range .Members»
«- if .Padding»
	_ [«.Size»]byte
«- else if .Field.Native»
	«.Field.GoName» «.Field.GoType» «.Field.Tag» // «printf "%#x" .Field.Offset»
«- else»
	«.Field.Storage» [«.Field.Size»]byte «.Field.Tag» // «printf "%#x" .Field.Offset», «.Field.Type»
«- end»
«- end»
}

var «.PlanVar» = layout.MustBuild(schema.New(«printf "%q" .Name»).
«- range .Fields»
	Field(«printf "%#x" .Offset», «printf "%q" .Name», schema.MustType(«printf "%q" .Type»)).
«- end»
«- if .Declared»
	Size(«printf "%#x" .Size»).
«- end»
	MustBuild())

func init() {
	verify.MustStruct(«.PlanVar», reflect.TypeFor[«.GoName»]())
}
«range .Accessors»
// «.GoName» returns «.Name», stored unaligned at «printf "%#x" .Offset».
func (s *«$.GoName») «.GoName»() «.GoType» {
	«.Getter»
}

// Set«.GoName» stores v as «.Name».
func (s *«$.GoName») Set«.GoName»(v «.GoType») {
	«.Setter»
}
«end»
// String renders the data fields of s without padding.
func (s *«.GoName») String() string {
	return render.Struct(«.PlanVar», s)
}
`
