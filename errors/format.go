package errors

import (
	"strconv"
	"strings"
)

// render produces the fixed diagnostic template:
//
//	\nERROR - operation: [Read];
//	reason: [Error during read file.];
//	in method: [bounded.(*Reader).ReadBytes];
//	in file: [/src/bounded/reader.go];
//	at line: [88]\n
func render(category Category, reason string, site CallSite) string {
	var b strings.Builder
	b.WriteString("\nERROR - operation: [")
	b.WriteString(string(category))
	b.WriteString("];\nreason: [")
	b.WriteString(reason)
	b.WriteString("];\nin method: [")
	b.WriteString(site.Function)
	b.WriteString("];\nin file: [")
	b.WriteString(site.File)
	b.WriteString("];\nat line: [")
	b.WriteString(strconv.Itoa(site.Line))
	b.WriteString("]\n")
	return b.String()
}
