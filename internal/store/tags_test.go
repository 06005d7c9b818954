package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openscan/vuln-manager/internal/models"
	"github.com/openscan/vuln-manager/internal/resources"
	"github.com/openscan/vuln-manager/internal/store"
	"github.com/openscan/vuln-manager/internal/store/migrations"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
	"github.com/openscan/vuln-manager/pkg/filter"
)

var _ = Describe("TagStore", func() {
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

		_, err = db.ExecContext(ctx, `
			INSERT INTO tasks (uuid, name, owner) VALUES
				('u1', 'web server', 'admin'),
				('u2', 'mail relay', 'admin')
		`)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should create a tag and attach it to a resource", func() {
		taskType := resources.Lookup("task")

		tagUUID, err := s.Tags().Create(ctx, &models.Tag{
			Name: "geo", Value: "EU", Active: true, ResourceType: "task",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Tags().Attach(ctx, tagUUID, taskType, "u1")).To(Succeed())

		compiler := &filter.Compiler{}
		clause := compiler.Compile(taskType.Request("tag=geo=EU", false, false))
		rows, err := s.Resources().List(ctx, taskType, false, clause)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(1))
		Expect(rows[0]["name"]).To(Equal("web server"))
	})

	It("should not match inactive tags", func() {
		taskType := resources.Lookup("task")

		tagUUID, err := s.Tags().Create(ctx, &models.Tag{
			Name: "geo", Value: "US", Active: false, ResourceType: "task",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Tags().Attach(ctx, tagUUID, taskType, "u2")).To(Succeed())

		compiler := &filter.Compiler{}
		clause := compiler.Compile(taskType.Request("tag=geo", false, false))
		rows, err := s.Resources().List(ctx, taskType, false, clause)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(BeEmpty())
	})

	It("should fail to attach an unknown tag", func() {
		err := s.Tags().Attach(ctx, "missing", resources.Lookup("task"), "u1")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should fail to attach to an unknown resource", func() {
		tagUUID, err := s.Tags().Create(ctx, &models.Tag{Name: "geo", ResourceType: "task"})
		Expect(err).NotTo(HaveOccurred())

		err = s.Tags().Attach(ctx, tagUUID, resources.Lookup("task"), "missing")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})
})
