package filter

// Controls are the pagination and sort directives of a filter term, used by
// listing contexts that never build a WHERE clause.
type Controls struct {
	// First is the zero-based offset of the first row.
	First int
	// Rows is the resolved, capped page size, -1 for unlimited.
	Rows int
	// SortField is the primary sort field, "name" unless the term says
	// otherwise.
	SortField string
	Ascending bool
}

// Controls extracts only the control keywords of a filter term. Only the
// first sort directive is honored, mirroring clause compilation.
func (c *Compiler) Controls(term string) Controls {
	controls := Controls{
		Rows:      -2,
		SortField: "name",
		Ascending: true,
	}

	haveSort := false
	for _, k := range split(term, "name") {
		switch k.Column {
		case "first":
			controls.First = k.Integer - 1
			if controls.First < 0 {
				controls.First = 0
			}
		case "rows":
			controls.Rows = k.Integer
		case "sort", "sort-reverse":
			if haveSort {
				continue
			}
			haveSort = true
			controls.SortField = k.Value
			controls.Ascending = k.Column == "sort"
		}
	}

	controls.Rows = c.rowLimit(controls.Rows, false)
	return controls
}
