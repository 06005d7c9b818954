package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openscan/vuln-manager/internal/store"
	"github.com/openscan/vuln-manager/internal/store/migrations"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

var _ = Describe("SettingStore", func() {
	var (
		ctx context.Context
		db  *sql.DB
		s   *store.Store
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should seed the paging defaults", func() {
		Expect(s.Settings().RowsPerPage(ctx, 99)).To(Equal(10))
		Expect(s.Settings().MaxRowsPerPage(ctx, 99)).To(Equal(1000))
	})

	It("should upsert values", func() {
		Expect(s.Settings().Set(ctx, store.SettingRowsPerPage, "25")).To(Succeed())
		Expect(s.Settings().RowsPerPage(ctx, 99)).To(Equal(25))

		Expect(s.Settings().Set(ctx, store.SettingRowsPerPage, "50")).To(Succeed())
		Expect(s.Settings().RowsPerPage(ctx, 99)).To(Equal(50))
	})

	It("should return a not found error for unknown names", func() {
		_, err := s.Settings().Get(ctx, "no_such_setting")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should fall back on malformed values", func() {
		Expect(s.Settings().Set(ctx, store.SettingRowsPerPage, "junk")).To(Succeed())
		Expect(s.Settings().RowsPerPage(ctx, 7)).To(Equal(7))

		Expect(s.Settings().Set(ctx, store.SettingRowsPerPage, "0")).To(Succeed())
		Expect(s.Settings().RowsPerPage(ctx, 7)).To(Equal(7))
	})
})
