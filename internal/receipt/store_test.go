package receipt_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/receipt"
	"github.com/frahmantamala/household-expenses/internal/transport"
	"github.com/frahmantamala/household-expenses/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Receipt Store", func() {
	var (
		dir   string
		store *receipt.Store
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		store = receipt.NewStore(filepath.Join(dir, "receipts"))
	})

	It("names files after the expense and the upload's base name", func() {
		Expect(receipt.FileName(7, "../../etc/scan.png")).To(Equal("expense_7_scan.png"))
		Expect(receipt.FileName(7, "scan.png")).To(Equal("expense_7_scan.png"))
	})

	It("decodes and writes the payload", func() {
		name, err := store.Save(3, "bill.txt", base64.StdEncoding.EncodeToString([]byte("paid")))
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("expense_3_bill.txt"))

		data, err := os.ReadFile(filepath.Join(dir, "receipts", name))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("paid"))
	})

	It("accepts data URLs", func() {
		name, err := store.Save(4, "a.txt", "data:text/plain;base64,"+base64.StdEncoding.EncodeToString([]byte("x")))
		Expect(err).NotTo(HaveOccurred())
		p, err := store.Path(name)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(HaveSuffix(name))
	})

	It("rejects undecodable payloads", func() {
		_, err := store.Save(5, "a.txt", "***")
		Expect(errors.IsType(err, errors.ErrorTypeValidation)).To(BeTrue())
	})

	DescribeTable("refuses names outside the directory",
		func(name string) {
			_, err := store.Path(name)
			Expect(err).To(MatchError(errors.ErrReceiptNotFound))
		},
		Entry("parent", ".."),
		Entry("traversal", "../secret"),
		Entry("nested", "a/b"),
		Entry("backslash", `a\b`),
		Entry("missing", "expense_1_none.png"),
		Entry("empty", ""),
	)

	Describe("Handler", func() {
		var router *chi.Mux

		BeforeEach(func() {
			router = chi.NewRouter()
			router.Get("/receipts/*", receipt.NewHandler(transport.NewBaseHandler(logger.Discard()), store).GetReceipt)
		})

		It("serves stored files as octet-stream", func() {
			name, err := store.Save(9, "my scan.txt", base64.StdEncoding.EncodeToString([]byte("bytes")))
			Expect(err).NotTo(HaveOccurred())

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/expense_9_my%20scan.txt", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/octet-stream"))
			Expect(w.Body.String()).To(Equal("bytes"))
			Expect(name).To(Equal("expense_9_my scan.txt"))
		})

		It("answers 404 for unknown files", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/nope.png", nil))
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"Receipt not found"}`))
		})
	})
})
