package filter

import (
	"fmt"
	"strings"
)

// tagClause expands the tag and tag_id pseudo-columns into a correlated
// existence check against the generic tagging relation. The term composes
// with the same join-prefix logic as any literal column.
//
// tag= with a NAME=VALUE argument requires an exact value match; approx and
// regexp relations match tag name and tag value independently with the same
// operator. Unsupported relations drop the term.
func tagClause(req Request, k *Keyword) (string, bool) {
	var condition string

	switch k.Column {
	case "tag":
		name, value, hasValue := strings.Cut(k.Value, "=")
		switch k.Relation {
		case RelEqual:
			if hasValue {
				condition = fmt.Sprintf("tags.name = %s AND tags.value = %s", quote(name), quote(value))
			} else {
				condition = fmt.Sprintf("tags.name = %s", quote(name))
			}
		case RelApprox:
			pattern := quote("%" + k.Value + "%")
			condition = fmt.Sprintf("(tags.name ILIKE %s OR tags.value ILIKE %s)", pattern, pattern)
		case RelRegexp:
			pattern := quote(k.Value)
			condition = fmt.Sprintf("(regexp_matches(tags.name, %s) OR regexp_matches(tags.value, %s))", pattern, pattern)
		default:
			return "", false
		}
	case "tag_id":
		switch k.Relation {
		case RelEqual:
			condition = fmt.Sprintf("tags.uuid = %s", quote(k.Value))
		case RelApprox:
			condition = fmt.Sprintf("tags.uuid ILIKE %s", quote("%"+k.Value+"%"))
		case RelRegexp:
			condition = fmt.Sprintf("regexp_matches(tags.uuid, %s)", quote(k.Value))
		default:
			return "", false
		}
	default:
		return "", false
	}

	return fmt.Sprintf(
		"(EXISTS (SELECT 1 FROM tags, tag_resources"+
			" WHERE tag_resources.tag_id = tags.id"+
			" AND tags.active != 0"+
			" AND tag_resources.resource_type = %s"+
			" AND tag_resources.resource_id = %s.id"+
			" AND %s))",
		quote(req.Type), resourceTable(req), condition,
	), true
}

// resourceTable names the table the compiled fragments correlate against.
// Trash listings run their table under the live name as an alias, so the
// live name is always the right one here.
func resourceTable(req Request) string {
	return req.Type + "s"
}
