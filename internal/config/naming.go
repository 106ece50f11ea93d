package config

import (
	"strings"

	"docmap-generator/internal/match"
)

// NamingFunc derives a wire attribute name from a property name.
type NamingFunc func(string) string

// Naming returns the naming convention function for a convention name.
// Unknown conventions fall back to exact.
func Naming(convention string) NamingFunc {
	switch convention {
	case "camel":
		return CamelCase
	case "pascal":
		return PascalCase
	case "snake":
		return SnakeCase
	default:
		return Exact
	}
}

// Exact keeps the property name unchanged.
func Exact(name string) string { return name }

// CamelCase renders "OrderID" as "orderId".
func CamelCase(name string) string {
	tokens := match.TokenizeIdent(name)
	if len(tokens) == 0 {
		return name
	}

	var b strings.Builder

	b.WriteString(tokens[0])

	for _, t := range tokens[1:] {
		b.WriteString(capitalize(t))
	}

	return b.String()
}

// PascalCase renders "order_id" as "OrderId".
func PascalCase(name string) string {
	tokens := match.TokenizeIdent(name)
	if len(tokens) == 0 {
		return name
	}

	var b strings.Builder

	for _, t := range tokens {
		b.WriteString(capitalize(t))
	}

	return b.String()
}

// SnakeCase renders "OrderID" as "order_id".
func SnakeCase(name string) string {
	tokens := match.TokenizeIdent(name)
	if len(tokens) == 0 {
		return name
	}

	return strings.Join(tokens, "_")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
