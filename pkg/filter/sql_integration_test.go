package filter

import (
	"database/sql"
	"strconv"

	"github.com/duckdb/duckdb-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Clause integration with DuckDB", func() {
	var db *sql.DB

	BeforeEach(func() {
		connector, err := duckdb.NewConnector("", nil)
		Expect(err).ToNot(HaveOccurred())

		db = sql.OpenDB(connector)
		Expect(db.Ping()).To(Succeed())

		statements := []string{
			`CREATE TABLE tasks (
				id BIGINT, uuid TEXT, name TEXT, comment TEXT, status TEXT,
				progress INTEGER, threat TEXT, severity DOUBLE, created BIGINT
			)`,
			`CREATE TABLE tags (
				id BIGINT, uuid TEXT, name TEXT, value TEXT, active INTEGER
			)`,
			`CREATE TABLE tag_resources (
				tag_id BIGINT, resource_type TEXT, resource_id BIGINT, resource_uuid TEXT
			)`,
			`INSERT INTO tasks VALUES
				(1, 'u1', 'web server', '', 'Running', 42, 'High', 9.8, 100),
				(2, 'u2', 'mail relay', 'it''s legacy', 'Done', 100, 'Low', 2.1, 200),
				(3, 'u3', 'db primary', '', 'New', 0, 'Medium', NULL, 300),
				(4, 'u4', 'web proxy', '', 'Stopped', 13, 'High', 7.0, 400)`,
			`INSERT INTO tags VALUES
				(1, 't1', 'geo', 'EU', 1),
				(2, 't2', 'geo', 'US', 0)`,
			`INSERT INTO tag_resources VALUES
				(1, 'task', 1, 'u1'),
				(2, 'task', 4, 'u4')`,
		}
		for _, stmt := range statements {
			_, err := db.Exec(stmt)
			Expect(err).ToNot(HaveOccurred(), stmt)
		}
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	queryNames := func(term string) ([]string, error) {
		compiler := &Compiler{}
		clause := compiler.Compile(taskListing(term))

		query := "SELECT name FROM tasks"
		if clause.Where != "" {
			query += " WHERE " + clause.Where
		}
		if clause.Order != "" {
			query += " " + clause.Order
		}
		if clause.Max > 0 {
			query += " LIMIT " + strconv.Itoa(clause.Max)
			if clause.First > 0 {
				query += " OFFSET " + strconv.Itoa(clause.First)
			}
		}

		rows, err := db.Query(query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var names []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		return names, rows.Err()
	}

	It("should match substrings case insensitively", func() {
		names, err := queryNames("name~WEB")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"web proxy", "web server"}))
	})

	It("should compare severities numerically", func() {
		names, err := queryNames("severity>6.9")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"web proxy", "web server"}))
	})

	It("should match regular expressions", func() {
		names, err := queryNames("name:^web")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"web proxy", "web server"}))
	})

	It("should combine terms left to right", func() {
		names, err := queryNames("name~web and status=Running")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"web server"}))
	})

	It("should search free text across columns", func() {
		names, err := queryNames("legacy")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"mail relay"}))
	})

	It("should match exact free text numerically", func() {
		names, err := queryNames("=9.8")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"web server"}))
	})

	It("should keep quoted apostrophes literal", func() {
		names, err := queryNames(`comment~"it's"`)
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"mail relay"}))
	})

	It("should treat injection attempts as plain values", func() {
		names, err := queryNames(`name="'; DROP TABLE tasks; --"`)
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(BeEmpty())

		var count int
		Expect(db.QueryRow("SELECT count(*) FROM tasks").Scan(&count)).To(Succeed())
		Expect(count).To(Equal(4))
	})

	It("should only match active tags", func() {
		names, err := queryNames("tag=geo")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"web server"}))
	})

	It("should match tag values exactly", func() {
		names, err := queryNames("tag=geo=EU")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"web server"}))

		names, err = queryNames("tag=geo=US")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(BeEmpty())
	})

	It("should paginate after sorting", func() {
		names, err := queryNames("sort=name first=2 rows=2")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"mail relay", "web proxy"}))
	})

	It("should sort blank severities below every number", func() {
		names, err := queryNames("sort-reverse=severity rows=-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(Equal([]string{"web server", "web proxy", "mail relay", "db primary"}))
	})
})
