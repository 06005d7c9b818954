package resources

import (
	"github.com/openscan/vuln-manager/pkg/filter"
)

// Type describes one resource type's listing surface: the table it lives
// in, the columns a listing selects, and the columns a filter may reference
// without selecting them. Declarations are static data; nothing mutates
// them after init.
type Type struct {
	Name        string
	Table       string
	DefaultSort string
	// FilterColumns are the names free-text search expands over.
	FilterColumns []string
	SelectColumns []filter.ColumnDecl
	WhereColumns  []filter.ColumnDecl
}

// HasTrash reports whether the type keeps a *_trash twin table.
func (t *Type) HasTrash() bool {
	switch t.Name {
	case "task", "credential", "filter", "note", "override":
		return true
	}
	return false
}

var registry = map[string]*Type{
	"task": {
		Name:        "task",
		Table:       "tasks",
		DefaultSort: "name",
		FilterColumns: []string{
			"uuid", "name", "comment", "status", "progress", "threat",
			"trend", "severity", "owner", "created", "modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "tasks.uuid", Type: filter.TypeString},
			{Name: "name", Expr: "tasks.name", Type: filter.TypeString},
			{Name: "comment", Expr: "tasks.comment", Type: filter.TypeString},
			{Name: "status", Expr: "tasks.status", Type: filter.TypeString},
			{Name: "progress", Expr: "tasks.progress", Type: filter.TypeInteger},
			{Name: "threat", Expr: "tasks.threat", Type: filter.TypeString},
			{Name: "trend", Expr: "tasks.trend", Type: filter.TypeString},
			{Name: "severity", Expr: "tasks.severity", Type: filter.TypeDouble},
			{Name: "owner", Expr: "tasks.owner", Type: filter.TypeString},
			{Name: "created", Expr: "tasks.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "tasks.modified", Type: filter.TypeInteger},
		},
		WhereColumns: []filter.ColumnDecl{
			{Name: "schedule", Expr: "tasks.schedule", Type: filter.TypeInteger},
			{Name: "target", Expr: "tasks.target", Type: filter.TypeInteger},
		},
	},
	"report": {
		Name:        "report",
		Table:       "reports",
		DefaultSort: "created",
		FilterColumns: []string{
			"uuid", "status", "progress", "severity", "start_time",
			"end_time", "owner", "created", "modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "reports.uuid", Type: filter.TypeString},
			{Name: "status", Expr: "reports.status", Type: filter.TypeString},
			{Name: "progress", Expr: "reports.progress", Type: filter.TypeInteger},
			{Name: "severity", Expr: "reports.severity", Type: filter.TypeDouble},
			{Name: "start_time", Expr: "reports.start_time", Type: filter.TypeInteger},
			{Name: "end_time", Expr: "reports.end_time", Type: filter.TypeInteger},
			{Name: "owner", Expr: "reports.owner", Type: filter.TypeString},
			{Name: "created", Expr: "reports.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "reports.modified", Type: filter.TypeInteger},
			// Filterable via task= or task_id=, never part of the listing.
			{Name: "_task", Expr: "reports.task", Type: filter.TypeInteger},
		},
	},
	"result": {
		Name:        "result",
		Table:       "results",
		DefaultSort: "name",
		FilterColumns: []string{
			"uuid", "name", "host", "port", "severity", "threat",
			"description", "created",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "results.uuid", Type: filter.TypeString},
			{Name: "name", Expr: "results.name", Type: filter.TypeString},
			{Name: "host", Expr: "results.host", Type: filter.TypeString},
			{Name: "port", Expr: "results.port", Type: filter.TypeString},
			{Name: "severity", Expr: "results.severity", Type: filter.TypeDouble},
			{Name: "threat", Expr: "results.threat", Type: filter.TypeString},
			{Name: "description", Expr: "results.description", Type: filter.TypeString},
			{Name: "owner", Expr: "results.owner", Type: filter.TypeString},
			{Name: "created", Expr: "results.created", Type: filter.TypeInteger},
		},
		WhereColumns: []filter.ColumnDecl{
			{Name: "report", Expr: "results.report", Type: filter.TypeInteger},
			{Name: "task", Expr: "results.task", Type: filter.TypeInteger},
			{Name: "nvt_id", Expr: "results.nvt", Type: filter.TypeString},
		},
	},
	"host": {
		Name:        "host",
		Table:       "hosts",
		DefaultSort: "name",
		FilterColumns: []string{
			"uuid", "name", "comment", "ip", "os", "severity", "owner",
			"created", "modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "hosts.uuid", Type: filter.TypeString},
			{Name: "name", Expr: "hosts.name", Type: filter.TypeString},
			{Name: "comment", Expr: "hosts.comment", Type: filter.TypeString},
			{Name: "ip", Expr: "hosts.ip", Type: filter.TypeString},
			{Name: "os", Expr: "hosts.os", Type: filter.TypeString},
			{Name: "severity", Expr: "hosts.severity", Type: filter.TypeDouble},
			{Name: "owner", Expr: "hosts.owner", Type: filter.TypeString},
			{Name: "created", Expr: "hosts.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "hosts.modified", Type: filter.TypeInteger},
		},
	},
	"credential": {
		Name:        "credential",
		Table:       "credentials",
		DefaultSort: "name",
		FilterColumns: []string{
			"uuid", "name", "comment", "type", "login", "owner", "created",
			"modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "credentials.uuid", Type: filter.TypeString},
			{Name: "name", Expr: "credentials.name", Type: filter.TypeString},
			{Name: "comment", Expr: "credentials.comment", Type: filter.TypeString},
			{Name: "type", Expr: "credentials.type", Type: filter.TypeString},
			{Name: "login", Expr: "credentials.login", Type: filter.TypeString},
			{Name: "owner", Expr: "credentials.owner", Type: filter.TypeString},
			{Name: "created", Expr: "credentials.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "credentials.modified", Type: filter.TypeInteger},
		},
	},
	"user": {
		Name:        "user",
		Table:       "users",
		DefaultSort: "name",
		FilterColumns: []string{
			"uuid", "name", "comment", "roles", "hosts", "method", "owner",
			"created", "modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "users.uuid", Type: filter.TypeString},
			{Name: "name", Expr: "users.name", Type: filter.TypeString},
			{Name: "comment", Expr: "users.comment", Type: filter.TypeString},
			{Name: "roles", Expr: "users.roles", Type: filter.TypeString},
			{Name: "hosts", Expr: "users.hosts", Type: filter.TypeString},
			{Name: "method", Expr: "users.method", Type: filter.TypeString},
			{Name: "owner", Expr: "users.owner", Type: filter.TypeString},
			{Name: "created", Expr: "users.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "users.modified", Type: filter.TypeInteger},
		},
	},
	"filter": {
		Name:        "filter",
		Table:       "filters",
		DefaultSort: "name",
		FilterColumns: []string{
			"uuid", "name", "comment", "type", "term", "owner", "created",
			"modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "filters.uuid", Type: filter.TypeString},
			{Name: "name", Expr: "filters.name", Type: filter.TypeString},
			{Name: "comment", Expr: "filters.comment", Type: filter.TypeString},
			{Name: "type", Expr: "filters.type", Type: filter.TypeString},
			{Name: "term", Expr: "filters.term", Type: filter.TypeString},
			{Name: "owner", Expr: "filters.owner", Type: filter.TypeString},
			{Name: "created", Expr: "filters.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "filters.modified", Type: filter.TypeInteger},
		},
	},
	"tag": {
		Name:        "tag",
		Table:       "tags",
		DefaultSort: "name",
		FilterColumns: []string{
			"uuid", "name", "value", "comment", "active", "resource_type",
			"owner", "created", "modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "tags.uuid", Type: filter.TypeString},
			{Name: "name", Expr: "tags.name", Type: filter.TypeString},
			{Name: "value", Expr: "tags.value", Type: filter.TypeString},
			{Name: "comment", Expr: "tags.comment", Type: filter.TypeString},
			{Name: "active", Expr: "tags.active", Type: filter.TypeInteger},
			{Name: "resource_type", Expr: "tags.resource_type", Type: filter.TypeString},
			{Name: "owner", Expr: "tags.owner", Type: filter.TypeString},
			{Name: "created", Expr: "tags.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "tags.modified", Type: filter.TypeInteger},
		},
	},
	"note": {
		Name:        "note",
		Table:       "notes",
		DefaultSort: "nvt",
		FilterColumns: []string{
			"uuid", "nvt", "text", "hosts", "port", "severity", "owner",
			"created", "modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "notes.uuid", Type: filter.TypeString},
			{Name: "nvt", Expr: "notes.nvt", Type: filter.TypeString},
			{Name: "text", Expr: "notes.text", Type: filter.TypeString},
			{Name: "hosts", Expr: "notes.hosts", Type: filter.TypeString},
			{Name: "port", Expr: "notes.port", Type: filter.TypeString},
			{Name: "severity", Expr: "notes.severity", Type: filter.TypeDouble},
			{Name: "owner", Expr: "notes.owner", Type: filter.TypeString},
			{Name: "created", Expr: "notes.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "notes.modified", Type: filter.TypeInteger},
		},
		WhereColumns: []filter.ColumnDecl{
			{Name: "task", Expr: "notes.task", Type: filter.TypeInteger},
		},
	},
	"override": {
		Name:        "override",
		Table:       "overrides",
		DefaultSort: "nvt",
		FilterColumns: []string{
			"uuid", "nvt", "text", "hosts", "port", "severity",
			"new_severity", "owner", "created", "modified",
		},
		SelectColumns: []filter.ColumnDecl{
			{Name: "uuid", Expr: "overrides.uuid", Type: filter.TypeString},
			{Name: "nvt", Expr: "overrides.nvt", Type: filter.TypeString},
			{Name: "text", Expr: "overrides.text", Type: filter.TypeString},
			{Name: "hosts", Expr: "overrides.hosts", Type: filter.TypeString},
			{Name: "port", Expr: "overrides.port", Type: filter.TypeString},
			{Name: "severity", Expr: "overrides.severity", Type: filter.TypeDouble},
			{Name: "new_severity", Expr: "overrides.new_severity", Type: filter.TypeDouble},
			{Name: "owner", Expr: "overrides.owner", Type: filter.TypeString},
			{Name: "created", Expr: "overrides.created", Type: filter.TypeInteger},
			{Name: "modified", Expr: "overrides.modified", Type: filter.TypeInteger},
		},
		WhereColumns: []filter.ColumnDecl{
			{Name: "task", Expr: "overrides.task", Type: filter.TypeInteger},
		},
	},
}

// Lookup returns the declaration of a resource type, or nil for unknown
// names.
func Lookup(name string) *Type {
	return registry[name]
}

// Known reports whether name is a registered resource type. It backs the
// foreign *_id rewrite in the clause compiler.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names lists the registered type names. Order is unspecified.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Request builds the compile request for one listing of this type.
func (t *Type) Request(filterTerm string, trash, ignoreRowCap bool) filter.Request {
	return filter.Request{
		Type:          t.Name,
		Filter:        filterTerm,
		FilterColumns: t.FilterColumns,
		SelectColumns: t.SelectColumns,
		WhereColumns:  t.WhereColumns,
		Trash:         trash,
		IgnoreRowCap:  ignoreRowCap,
		DefaultSort:   t.DefaultSort,
	}
}
