package lexer

import (
	"strings"
	"unicode"
)

// splitWordsLower splits a Rust identifier into lowercase words, handling
// snake_case, kebab-case, and camelCase/PascalCase boundaries (§4.2
// rename_all styles).
func splitWordsLower(name string) []string {
	var words []string
	var current strings.Builder
	prevLower := false

	for _, ch := range name {
		if ch == '_' || ch == '-' {
			if current.Len() > 0 {
				words = append(words, strings.ToLower(current.String()))
				current.Reset()
			}
			prevLower = false
			continue
		}
		if unicode.IsUpper(ch) && prevLower && current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
		current.WriteRune(ch)
		prevLower = unicode.IsLower(ch)
	}
	if current.Len() > 0 {
		words = append(words, strings.ToLower(current.String()))
	}
	return words
}

func capitalizeWord(word string) string {
	if word == "" {
		return ""
	}
	r := []rune(word)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// applyRenameAll applies a rename_all casing style to a declared function
// name. Supported styles: snake_case, kebab-case, camelCase,
// PascalCase/UpperCamelCase, lowercase, UPPERCASE, SCREAMING_SNAKE_CASE.
// Unknown styles and empty word lists return fnName unchanged, and the
// function is idempotent for styles that are already normal forms (§8
// round-trip law).
func applyRenameAll(fnName, style string) string {
	words := splitWordsLower(fnName)
	if len(words) == 0 {
		return fnName
	}

	switch style {
	case "snake_case":
		return strings.Join(words, "_")
	case "kebab-case":
		return strings.Join(words, "-")
	case "camelCase":
		var b strings.Builder
		b.WriteString(words[0])
		for _, w := range words[1:] {
			b.WriteString(capitalizeWord(w))
		}
		return b.String()
	case "PascalCase", "UpperCamelCase":
		var b strings.Builder
		for _, w := range words {
			b.WriteString(capitalizeWord(w))
		}
		return b.String()
	case "lowercase":
		return strings.ToLower(strings.Join(words, ""))
	case "UPPERCASE":
		return strings.ToUpper(strings.Join(words, ""))
	case "SCREAMING_SNAKE_CASE":
		return strings.ToUpper(strings.Join(words, "_"))
	default:
		return fnName
	}
}

// exposedCommandName derives the exposed command name from a
// `#[tauri::command(...)]` attribute's raw argument text and the declared
// function name (§4.2). An explicit `rename` wins over `rename_all`; with
// neither present the declared name is used unchanged.
func exposedCommandName(attrRaw, fnName string) string {
	inner := strings.TrimSpace(attrRaw)
	inner = strings.TrimPrefix(inner, "(")
	inner = strings.TrimSuffix(inner, ")")
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return fnName
	}

	var rename, renameAll string
	for _, part := range strings.Split(inner, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		key, val, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if val == "" {
			continue
		}
		switch key {
		case "rename":
			rename = val
		case "rename_all":
			renameAll = val
		}
	}

	if rename != "" {
		return rename
	}
	if renameAll != "" {
		return applyRenameAll(fnName, renameAll)
	}
	return fnName
}
