package filter

import (
	"strconv"
	"strings"
)

// Clean round-trips a filter term through the splitter and re-serializes it
// canonically. When dropColumn is non-empty, keywords on that column (also
// matching the private underscore form, case-insensitively) are removed.
//
// The rows=-2 sentinel is resolved to the effective capped page size, so a
// persisted term stores a concrete row count. Cleaning is idempotent:
// Clean(Clean(term)) == Clean(term).
func (c *Compiler) Clean(term, dropColumn string, ignoreRowCap bool) string {
	keywords := split(term, "")

	parts := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if dropColumn != "" && k.Column != "" && columnMatches(k.Column, dropColumn) {
			continue
		}
		parts = append(parts, c.serializeKeyword(k, ignoreRowCap))
	}

	return strings.Join(parts, " ")
}

func columnMatches(column, name string) bool {
	return strings.EqualFold(column, name) ||
		strings.EqualFold(strings.TrimPrefix(column, "_"), name) ||
		strings.EqualFold(column, strings.TrimPrefix(name, "_"))
}

// serializeKeyword renders one keyword back into term syntax. The output is
// semantically equivalent to the input, not byte identical: quoting is
// re-applied only where the round trip needs it.
func (c *Compiler) serializeKeyword(k *Keyword, ignoreRowCap bool) string {
	value := k.Value
	if k.Column == "rows" && k.Type == TypeInteger && k.Integer == -2 {
		value = strconv.Itoa(c.rowLimit(-2, ignoreRowCap))
	}

	var sb strings.Builder
	if k.Column != "" {
		sb.WriteString(k.Column)
		sb.WriteString(k.Relation.Symbol())
	} else if k.Equal {
		sb.WriteString("=")
	}
	sb.WriteString(quoteTerm(value, k.Quoted))

	return sb.String()
}

// quoteTerm re-quotes a value for term output, wrapping it in whichever
// quote character the value does not contain. A value holding both kinds
// is emitted as adjacent quoted chunks, which the splitter joins back into
// a single keyword.
func quoteTerm(value string, quoted bool) string {
	hasSingle := strings.Contains(value, "'")
	hasDouble := strings.Contains(value, `"`)
	if !quoted && !hasSingle && !hasDouble && !strings.ContainsAny(value, " \t\n\r") {
		return value
	}
	switch {
	case hasDouble && hasSingle:
		return quoteChunks(value)
	case hasDouble:
		return "'" + value + "'"
	default:
		return `"` + value + `"`
	}
}

// quoteChunks splits value at each double quote. The runs between them are
// double-quoted and the double quotes themselves single-quoted, so every
// chunk is wrapped in the character it cannot contain.
func quoteChunks(value string) string {
	var sb strings.Builder
	for value != "" {
		i := strings.IndexByte(value, '"')
		if i < 0 {
			sb.WriteString(`"` + value + `"`)
			break
		}
		if i > 0 {
			sb.WriteString(`"` + value[:i] + `"`)
		}
		sb.WriteString(`'"'`)
		value = value[i+1:]
	}
	return sb.String()
}
