package models

// Resource is one generic listing row: selectable column name to value, as
// produced by the resource store for any registered type.
type Resource map[string]any

// Filter is a stored, named filter term.
type Filter struct {
	UUID     string
	Name     string
	Comment  string
	Type     string
	Term     string
	Owner    string
	Created  int64
	Modified int64
}

// Tag is a named annotation attachable to any resource.
type Tag struct {
	UUID         string
	Name         string
	Value        string
	Comment      string
	Active       bool
	ResourceType string
	Owner        string
	Created      int64
	Modified     int64
}

// Setting is one named configuration row, e.g. the default rows per page.
type Setting struct {
	Name  string
	Value string
}
