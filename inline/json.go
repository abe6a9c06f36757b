package inline

import (
	"encoding/json"
	"io"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/rko-cli/rko/media"
)

// Output is the structured result of resolving one URL.
type Output struct {
	Query  string        `json:"query"`
	Source *media.Source `json:"source"`
	Offers []media.Offer `json:"offers"`
}

func writeJson(out io.Writer, output *Output) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}

// Schema returns the JSON schema of Output.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "source", "offer", "output":
			return t.PkgPath()[strings.LastIndex(t.PkgPath(), "/")+1:] + "." + name
		}

		return name
	}

	return reflector.Reflect(&Output{})
}
