package knit

import (
	"fmt"
	"sort"
	"strings"
)

// ComponentID builds the canonical component identifier from package and class name.
func ComponentID(pkg, name string) string {
	if pkg == "" {
		return name
	}
	builder := strings.Builder{}
	builder.WriteString(pkg)
	builder.WriteString(".")
	builder.WriteString(name)
	return builder.String()
}

// SimpleName returns the trailing segment of a dotted type or component id.
func SimpleName(id string) string {
	if idx := strings.LastIndex(id, "."); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// TypeKey builds the provider-index key for a type and optional qualifier.
func TypeKey(typ, qualifier string) string {
	if qualifier == "" {
		return typ
	}
	return typ + "@" + qualifier
}

// EdgeID builds the export edge identifier, dots are not valid in host ids.
func EdgeID(from, to string) string {
	builder := strings.Builder{}
	builder.WriteString(strings.ReplaceAll(from, ".", "_"))
	builder.WriteString("_to_")
	builder.WriteString(strings.ReplaceAll(to, ".", "_"))
	return builder.String()
}

// CycleID builds the identifier for the nth discovered cycle.
func CycleID(seq int) string {
	return fmt.Sprintf("cycle_%d", seq)
}

// IssueID builds a deterministic issue identifier from the issue type and the
// set of claimed component ids, insensitive to component order.
func IssueID(issueType IssueType, components []string) string {
	sorted := make([]string, len(components))
	copy(sorted, components)
	sort.Strings(sorted)

	builder := strings.Builder{}
	builder.WriteString(string(issueType))
	for _, id := range sorted {
		builder.WriteString(":")
		builder.WriteString(id)
	}
	return fmt.Sprintf("issue_%s_%016x", strings.ToLower(string(issueType)), FingerprintString(builder.String()))
}
