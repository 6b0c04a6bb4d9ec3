// Generates sample entries from a template.

package templates

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/maruel/notionctl/internal/notion"
)

// Fake builds the properties of sample entry number index.
//
// Properties with a fake pattern use it with "{n}" replaced by index. Select
// and status properties without a pattern pick one of their options at
// random. Everything else is left unset.
func (t *Template) Fake(index int, rng *rand.Rand) (map[string]notion.PropertyValue, error) {
	out := make(map[string]notion.PropertyValue, len(t.Properties))
	n := strconv.Itoa(index)
	for i := range t.Properties {
		p := &t.Properties[i]
		var raw string
		switch {
		case p.Fake != nil:
			raw = strings.ReplaceAll(*p.Fake, "{n}", n)
		case (p.Type == "select" || p.Type == "status") && len(p.Options) > 0:
			raw = p.Options[rng.IntN(len(p.Options))].Name
		default:
			continue
		}
		v, err := Value(p.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		out[p.Name] = v
	}
	return out, nil
}
