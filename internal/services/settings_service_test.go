package services_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openscan/vuln-manager/internal/models"
	"github.com/openscan/vuln-manager/internal/services"
	"github.com/openscan/vuln-manager/internal/store"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

var _ = Describe("Settings", func() {
	var (
		ctx      context.Context
		db       *sql.DB
		settings *services.Settings
	)

	BeforeEach(func() {
		ctx = context.Background()
		var st *store.Store
		st, db = newTestStore()
		settings = services.NewSettings(st)
	})

	AfterEach(func() {
		db.Close()
	})

	It("should update a paging setting", func() {
		Expect(settings.Set(ctx, store.SettingRowsPerPage, "25")).To(Succeed())

		setting, err := settings.Get(ctx, store.SettingRowsPerPage)
		Expect(err).NotTo(HaveOccurred())
		Expect(setting.Value).To(Equal("25"))
	})

	It("should reject a non positive page size", func() {
		err := settings.Set(ctx, store.SettingRowsPerPage, "0")
		Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())
	})

	It("should reject a non numeric row cap", func() {
		err := settings.Set(ctx, store.SettingMaxRowsPerPage, "many")
		Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())
	})
})

var _ = Describe("Tags", func() {
	var (
		ctx  context.Context
		db   *sql.DB
		st   *store.Store
		tags *services.Tags
	)

	BeforeEach(func() {
		ctx = context.Background()
		st, db = newTestStore()
		tags = services.NewTags(st)

		_, err := db.ExecContext(ctx,
			`INSERT INTO tasks (uuid, name) VALUES ('u1', 'web server')`)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		db.Close()
	})

	It("should create a tag and attach it to resources", func() {
		id, err := tags.Create(ctx, &models.Tag{
			Name:         "geo",
			Value:        "EU",
			Active:       true,
			ResourceType: "task",
		}, []string{"u1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(id).NotTo(BeEmpty())

		var count int
		row := db.QueryRowContext(ctx, `SELECT count(*) FROM tag_resources`)
		Expect(row.Scan(&count)).To(Succeed())
		Expect(count).To(Equal(1))
	})

	It("should reject an unknown resource type", func() {
		_, err := tags.Create(ctx, &models.Tag{Name: "geo", ResourceType: "nonsense"}, nil)
		Expect(srvErrors.IsUnknownResourceTypeError(err)).To(BeTrue())
	})

	It("should report a missing resource on attach", func() {
		_, err := tags.Create(ctx, &models.Tag{Name: "geo", ResourceType: "task"}, []string{"missing"})
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})
})
