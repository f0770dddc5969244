package usecases

import (
	"fmt"
	"strings"
)

// RenderTemplate substitutes {{token}} placeholders in body with values from
// vars. Unknown tokens are left verbatim so a missing variable is visible in
// the delivered message instead of silently collapsing to an empty string.
// A nil value renders as the empty string.
func RenderTemplate(body string, vars map[string]interface{}) string {
	if len(vars) == 0 {
		return body
	}
	replacements := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		rendered := ""
		if value != nil {
			rendered = fmt.Sprintf("%v", value)
		}
		replacements = append(replacements, "{{"+key+"}}", rendered)
	}
	return strings.NewReplacer(replacements...).Replace(body)
}
