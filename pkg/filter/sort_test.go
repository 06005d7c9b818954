package filter

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sort compilation", func() {
	var compiler *Compiler

	BeforeEach(func() {
		compiler = &Compiler{}
	})

	compile := func(term string) Clause {
		return compiler.Compile(taskListing(term))
	}

	Context("default sort", func() {
		It("should sort by the type default when the term has no sort", func() {
			clause := compile("name=web")
			Expect(clause.Order).To(Equal("ORDER BY lower(CAST (tasks.name AS TEXT)) ASC"))
		})
	})

	Context("directions", func() {
		It("should sort ascending on sort", func() {
			clause := compile("sort=comment")
			Expect(clause.Order).To(Equal("ORDER BY lower(CAST (tasks.comment AS TEXT)) ASC"))
		})

		It("should sort descending on sort-reverse", func() {
			clause := compile("sort-reverse=comment")
			Expect(clause.Order).To(Equal("ORDER BY lower(CAST (tasks.comment AS TEXT)) DESC"))
		})
	})

	Context("typed sorting", func() {
		It("should sort integer columns numerically", func() {
			clause := compile("sort=created")
			Expect(clause.Order).To(Equal("ORDER BY CAST (tasks.created AS INTEGER) ASC"))
		})

		It("should sort severity with blanks below every number", func() {
			clause := compile("sort-reverse=severity")
			Expect(clause.Order).To(Equal(
				"ORDER BY (CASE WHEN tasks.severity IS NULL OR CAST (tasks.severity AS TEXT) = ''" +
					" THEN -1000000.0 ELSE CAST (tasks.severity AS DOUBLE) END) DESC"))
		})
	})

	Context("special cases", func() {
		It("should order task status by run state and progress", func() {
			clause := compile("sort=status")
			Expect(clause.Order).To(Equal(
				"ORDER BY (order_status(tasks.status) || lpad(CAST (tasks.progress AS TEXT), 3, '0')) ASC"))
		})

		It("should order task threat by severity rank", func() {
			clause := compile("sort-reverse=threat")
			Expect(clause.Order).To(Equal("ORDER BY order_threat(tasks.threat) DESC"))
		})

		It("should order user roles with administrators first", func() {
			req := Request{
				Type:          "user",
				Filter:        "sort=roles",
				FilterColumns: []string{"name", "roles"},
				SelectColumns: []ColumnDecl{
					{Name: "name", Expr: "users.name", Type: TypeString},
					{Name: "roles", Expr: "users.roles", Type: TypeString},
				},
				DefaultSort: "name",
			}
			clause := compiler.Compile(req)
			Expect(clause.Order).To(Equal("ORDER BY order_role(CAST (users.roles AS TEXT)) ASC"))
		})

		It("should order host addresses numerically", func() {
			req := Request{
				Type:          "host",
				Filter:        "sort=ip",
				FilterColumns: []string{"name", "ip"},
				SelectColumns: []ColumnDecl{
					{Name: "name", Expr: "hosts.name", Type: TypeString},
					{Name: "ip", Expr: "hosts.ip", Type: TypeString},
				},
				DefaultSort: "name",
			}
			clause := compiler.Compile(req)
			Expect(clause.Order).To(Equal("ORDER BY order_inet(CAST (hosts.ip AS TEXT)) ASC"))
		})
	})

	Context("multiple sort keywords", func() {
		It("should append later sorts as plain tie breakers", func() {
			clause := compile("sort=status sort-reverse=created")
			Expect(clause.Order).To(Equal(
				"ORDER BY (order_status(tasks.status) || lpad(CAST (tasks.progress AS TEXT), 3, '0')) ASC," +
					" tasks.created DESC"))
		})
	})

	Context("unresolvable sorts", func() {
		It("should drop a sort on a field outside the filter columns", func() {
			clause := compile("sort=progress")
			Expect(clause.Order).To(BeEmpty())
		})

		It("should fall back to the two level note ordering", func() {
			req := Request{
				Type:          "note",
				Filter:        "sort=name",
				FilterColumns: []string{"name", "text"},
				SelectColumns: []ColumnDecl{
					{Name: "text", Expr: "notes.text", Type: TypeString},
				},
				DefaultSort: "nvt",
			}
			clause := compiler.Compile(req)
			Expect(clause.Order).To(Equal("ORDER BY notes.nvt ASC, lower(CAST (notes.text AS TEXT)) ASC"))
		})
	})
})
