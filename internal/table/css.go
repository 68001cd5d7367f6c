package table

import "strings"

// ParseDeclarations splits an inline style attribute ("color: red; width:
// 120px") into a property map. Later declarations win, !important is dropped.
func ParseDeclarations(s string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
