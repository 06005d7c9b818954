package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Setting handlers", func() {
	var (
		router *gin.Engine
		db     *sql.DB
	)

	BeforeEach(func() {
		router, db = newTestRouter()
	})

	AfterEach(func() {
		db.Close()
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, jsonBody(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should return the seeded page size", func() {
		w := do(http.MethodGet, "/api/v1/settings/rows_per_page", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var setting struct {
			Name  string
			Value string
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &setting)).To(Succeed())
		Expect(setting.Name).To(Equal("rows_per_page"))
		Expect(setting.Value).To(Equal("10"))
	})

	It("should update a setting", func() {
		Expect(do(http.MethodPut, "/api/v1/settings/rows_per_page", `{"value": "25"}`).Code).
			To(Equal(http.StatusNoContent))

		var setting struct{ Value string }
		w := do(http.MethodGet, "/api/v1/settings/rows_per_page", "")
		Expect(json.Unmarshal(w.Body.Bytes(), &setting)).To(Succeed())
		Expect(setting.Value).To(Equal("25"))
	})

	It("should reject a non numeric page size", func() {
		Expect(do(http.MethodPut, "/api/v1/settings/rows_per_page", `{"value": "junk"}`).Code).
			To(Equal(http.StatusBadRequest))
	})

	It("should return 404 for an unknown setting", func() {
		Expect(do(http.MethodGet, "/api/v1/settings/no_such_setting", "").Code).
			To(Equal(http.StatusNotFound))
	})
})
