package filter

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controls", func() {
	var compiler *Compiler

	BeforeEach(func() {
		compiler = &Compiler{}
	})

	It("should extract pagination and sort", func() {
		controls := compiler.Controls("first=11 rows=20 sort-reverse=severity")
		Expect(controls.First).To(Equal(10))
		Expect(controls.Rows).To(Equal(20))
		Expect(controls.SortField).To(Equal("severity"))
		Expect(controls.Ascending).To(BeFalse())
	})

	It("should default to the first page sorted by name", func() {
		controls := compiler.Controls("")
		Expect(controls.First).To(Equal(0))
		Expect(controls.Rows).To(Equal(FallbackPageSize))
		Expect(controls.SortField).To(Equal("name"))
		Expect(controls.Ascending).To(BeTrue())
	})

	It("should honor only the first sort keyword", func() {
		controls := compiler.Controls("sort=severity sort-reverse=created")
		Expect(controls.SortField).To(Equal("severity"))
		Expect(controls.Ascending).To(BeTrue())
	})

	It("should resolve the rows sentinel through DefaultRows", func() {
		compiler.DefaultRows = func() int { return 25 }
		Expect(compiler.Controls("").Rows).To(Equal(25))
	})

	It("should cap the page size", func() {
		Expect(compiler.Controls("rows=5000").Rows).To(Equal(DefaultRowCap))
	})

	It("should ignore boolean keywords", func() {
		controls := compiler.Controls("name=web and not severity>5 first=3")
		Expect(controls.First).To(Equal(2))
	})
})
