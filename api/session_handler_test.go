package api

import (
	"net/http"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/flush"
	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/summary"
	"github.com/papercomputeco/recall/pkg/worker"
)

var _ = Describe("Session endpoints", func() {
	var (
		server *Server
		engine *memory.Engine
		tmpDir string
		pool   *worker.Pool
	)

	BeforeEach(func() {
		server, engine, tmpDir = newTestServer(Deps{})

		var err error
		pool, err = worker.NewPool(&worker.Config{Engine: engine, Logger: zap.NewNop()})
		Expect(err).NotTo(HaveOccurred())

		summarizer, err := summary.NewSummarizer(summary.Config{
			Store:  engine.Store(),
			Logger: zap.NewNop(),
		})
		Expect(err).NotTo(HaveOccurred())

		server = NewServer(Config{ListenAddr: ":0"}, engine, Deps{
			Pool:       pool,
			Summarizer: summarizer,
			Flush: flush.NewManager(flush.Config{
				ContextWindow:        100000,
				CompressionThreshold: 0.8,
				SoftThresholdTokens:  5000,
				Enabled:              true,
			}),
		}, zap.NewNop())
	})

	AfterEach(func() {
		pool.Close()
		os.RemoveAll(tmpDir)
	})

	Describe("POST /v1/memory/conversation", func() {
		It("accepts a conversation for asynchronous capture", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/memory/conversation", ConversationRequest{
				SessionID: "session-1",
				Turns: []memory.Turn{
					{Role: "user", Content: "I prefer trunk-based development."},
				},
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusAccepted))
		})

		It("rejects an empty turn list", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/memory/conversation", ConversationRequest{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /v1/memory/summarize", func() {
		It("writes a summary and returns its key", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/memory/summarize", SummarizeRequest{
				Turns: []memory.Turn{
					{Role: "user", Content: "walk me through the incident timeline"},
					{Role: "assistant", Content: "the incident started with a bad deploy"},
				},
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]string
			decodeBody(resp, &body)
			Expect(body["key"]).To(ContainSubstring("incident"))
		})

		It("rejects an empty turn list", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/memory/summarize", SummarizeRequest{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /v1/flush/check", func() {
		It("reports the trigger point without firing below it", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/flush/check", FlushCheckRequest{Tokens: 1000}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body FlushCheckResponse
			decodeBody(resp, &body)
			Expect(body.ShouldFlush).To(BeFalse())
			Expect(body.TriggerPoint).To(Equal(75000))
			Expect(body.Prompt).To(BeEmpty())
		})

		It("fires once past the trigger point and re-arms on reset", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/flush/check", FlushCheckRequest{Tokens: 80000}))
			Expect(err).NotTo(HaveOccurred())

			var body FlushCheckResponse
			decodeBody(resp, &body)
			Expect(body.ShouldFlush).To(BeTrue())
			Expect(body.Prompt).To(ContainSubstring("[SILENT]"))

			resp, err = server.app.Test(jsonRequest(http.MethodPost, "/v1/flush/check", FlushCheckRequest{Tokens: 90000}))
			Expect(err).NotTo(HaveOccurred())
			decodeBody(resp, &body)
			Expect(body.ShouldFlush).To(BeFalse())

			resp, err = server.app.Test(jsonRequest(http.MethodPost, "/v1/flush/reset", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			resp, err = server.app.Test(jsonRequest(http.MethodPost, "/v1/flush/check", FlushCheckRequest{Tokens: 90000}))
			Expect(err).NotTo(HaveOccurred())
			decodeBody(resp, &body)
			Expect(body.ShouldFlush).To(BeTrue())
		})
	})
})
