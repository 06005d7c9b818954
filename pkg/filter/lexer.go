package filter

import "regexp"

// splitter scans a filter term byte by byte and produces one keyword per
// call to next. Quoting is permissive: an unterminated quote absorbs the
// rest of the input instead of failing the parse.
type splitter struct {
	src []byte
	pos int
}

// split parses a filter term into its ordered keyword sequence. When
// defaultSort is non-empty and the term contains no sort directive, a
// synthetic "sort=<defaultSort>" keyword is appended so downstream
// consumers always find exactly one primary sort.
func split(term, defaultSort string) []*Keyword {
	s := &splitter{src: []byte(term)}

	var keywords []*Keyword
	for {
		k := s.next()
		if k == nil {
			break
		}
		keywords = append(keywords, k)
	}

	if defaultSort != "" && !hasSort(keywords) {
		keywords = append(keywords, &Keyword{
			Column:   "sort",
			Value:    defaultSort,
			Relation: RelEqual,
			Type:     TypeString,
		})
	}

	return keywords
}

func hasSort(keywords []*Keyword) bool {
	for _, k := range keywords {
		if k.Column == "sort" || k.Column == "sort-reverse" {
			return true
		}
	}
	return false
}

var columnPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.-]*$`)

// next scans the next keyword, or returns nil at end of input.
func (s *splitter) next() *Keyword {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return nil
	}

	var (
		column   string
		relation = RelNone
		value    []byte
		quoted   bool
		equal    bool
		sawQuote bool
	)

	for s.pos < len(s.src) {
		ch := s.src[s.pos]

		if ch == '"' || ch == '\'' {
			s.pos++
			atValueStart := len(value) == 0
			for s.pos < len(s.src) && s.src[s.pos] != ch {
				value = append(value, s.src[s.pos])
				s.pos++
			}
			if s.pos < len(s.src) {
				s.pos++ // closing quote
			}
			if atValueStart {
				quoted = true
			}
			sawQuote = true
			continue
		}

		if isSpace(ch) {
			break
		}

		// Relation operators split a keyword only before any quoting and
		// only once; later operator characters belong to the value, so
		// "created>2024-01-01T10:30" keeps its full timestamp.
		if !sawQuote && !equal && relation == RelNone && column == "" {
			if rel, ok := relationOp(ch); ok {
				if ch == '=' && len(value) == 0 {
					equal = true
					s.pos++
					continue
				}
				if len(value) > 0 && columnPattern.Match(value) {
					column = string(value)
					value = value[:0]
					relation = rel
					s.pos++
					continue
				}
			}
		}

		value = append(value, ch)
		s.pos++
	}

	k := &Keyword{
		Column:   column,
		Relation: relation,
		Value:    string(value),
		Quoted:   quoted,
		Equal:    equal,
	}
	if column == "" {
		k.Relation = RelWordApprox
	}
	k.typeValue()

	return k
}

func relationOp(ch byte) (Relation, bool) {
	switch ch {
	case '=':
		return RelEqual, true
	case '~':
		return RelApprox, true
	case '>':
		return RelAbove, true
	case '<':
		return RelBelow, true
	case ':':
		return RelRegexp, true
	default:
		return RelNone, false
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
