package filter

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Clean", func() {
	var compiler *Compiler

	BeforeEach(func() {
		compiler = &Compiler{}
	})

	It("should collapse whitespace between keywords", func() {
		Expect(compiler.Clean("name=a    comment=b", "", false)).To(Equal("name=a comment=b"))
	})

	It("should preserve free text and the exact marker", func() {
		Expect(compiler.Clean("web =3", "", false)).To(Equal("web =3"))
	})

	It("should re-quote values that need it", func() {
		Expect(compiler.Clean(`name="web server"`, "", false)).To(Equal(`name="web server"`))
	})

	It("should prefer single quotes when the value contains double quotes", func() {
		Expect(compiler.Clean(`comment='say "hi"'`, "", false)).To(Equal(`comment='say "hi"'`))
	})

	It("should chunk values containing both quote characters", func() {
		term := `comment="it's "'"'`
		Expect(compiler.Clean(term, "", false)).To(Equal(term))
	})

	It("should quote a reassembled value holding a quote character", func() {
		once := compiler.Clean(`it"'"s`, "", false)
		Expect(once).To(Equal(`"it's"`))
		Expect(compiler.Clean(once, "", false)).To(Equal(once))
	})

	It("should resolve the rows sentinel to the effective page size", func() {
		Expect(compiler.Clean("rows=-2", "", false)).To(Equal("rows=10"))

		compiler.DefaultRows = func() int { return 25 }
		Expect(compiler.Clean("rows=-2", "", false)).To(Equal("rows=25"))
	})

	It("should keep explicit row counts untouched", func() {
		Expect(compiler.Clean("rows=50", "", false)).To(Equal("rows=50"))
	})

	It("should be idempotent", func() {
		terms := []string{
			"rows=-2 first=1 sort=name",
			`name="web server" and not severity>6.9`,
			"tag=geo=EU web =exact",
		}
		for _, term := range terms {
			once := compiler.Clean(term, "", false)
			Expect(compiler.Clean(once, "", false)).To(Equal(once), term)
		}
	})

	Context("round trips", func() {
		It("should preserve the keyword sequence across a clean", func() {
			term := `name="web server" and not severity>6.9 comment~'say "hi"' =3 web first=2`
			original := split(term, "")
			cleaned := split(compiler.Clean(term, "", false), "")

			Expect(cleaned).To(HaveLen(len(original)))
			for i, k := range original {
				Expect(cleaned[i].Column).To(Equal(k.Column), k.Value)
				Expect(cleaned[i].Relation).To(Equal(k.Relation), k.Value)
				Expect(cleaned[i].Value).To(Equal(k.Value), k.Value)
				Expect(cleaned[i].Equal).To(Equal(k.Equal), k.Value)
			}
		})

		It("should drop only the named column from the sequence", func() {
			cleaned := split(compiler.Clean("rows=10 name=a web rows=20", "rows", false), "")

			Expect(cleaned).To(HaveLen(2))
			Expect(cleaned[0].Column).To(Equal("name"))
			Expect(cleaned[0].Value).To(Equal("a"))
			Expect(cleaned[1].Column).To(BeEmpty())
			Expect(cleaned[1].Value).To(Equal("web"))
		})
	})

	Context("dropping a column", func() {
		It("should drop every keyword on the column", func() {
			Expect(compiler.Clean("rows=10 name=a rows=20", "rows", false)).To(Equal("name=a"))
		})

		It("should match case insensitively", func() {
			Expect(compiler.Clean("NAME=a comment=b", "name", false)).To(Equal("comment=b"))
		})

		It("should match the private underscore form both ways", func() {
			Expect(compiler.Clean("task=3", "_task", false)).To(Equal(""))
			Expect(compiler.Clean("_task=3", "task", false)).To(Equal(""))
		})

		It("should never drop free text", func() {
			Expect(compiler.Clean("name web", "name", false)).To(Equal("name web"))
		})
	})
})
