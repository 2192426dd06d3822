package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"zenumljpg/src/server"
	"zenumljpg/src/services/auth"
	"zenumljpg/src/services/diagram"
	"zenumljpg/src/services/zenuml"
	"zenumljpg/src/test_artefacts/fakes"
	"zenumljpg/src/test_artefacts/stubs"
)

var _ = Describe("Server", func() {
	var (
		srv               *server.Server
		ts                *httptest.Server
		diagramRepository *fakes.InMemoryDiagramRepository
		renderer          *fakes.StubRenderer
		authService       *auth.AuthService
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	BeforeEach(func() {
		diagramRepository = fakes.NewInMemoryDiagramRepository()
		renderer = fakes.NewStubRenderer()
		userRepository := fakes.NewInMemoryUserRepository()
		tokens := auth.NewTokenIssuer("test-secret", 30*time.Minute)

		diagramService := diagram.NewDiagramService(
			logger,
			zenuml.NewExtractor(),
			renderer,
			diagramRepository,
			nil,
			"http://localhost:8888",
		)
		authService = auth.NewAuthService(logger, userRepository, tokens, nil)

		srv = server.NewServer(logger, 8888, diagramService, authService, tokens, nil)
		ts = httptest.NewServer(srv.Handler())
	})

	AfterEach(func() {
		ts.Close()
	})

	postJSON := func(path string, payload any, token string) *http.Response {
		body, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())

		req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := ts.Client().Do(req)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	login := func() (token string, userID string) {
		_, err := authService.Register(context.Background(), "alice", "a@x.com", "p1")
		Expect(err).NotTo(HaveOccurred())
		out, err := authService.Login(context.Background(), "a@x.com", "p1")
		Expect(err).NotTo(HaveOccurred())
		return out.Token, out.UserID
	}

	Describe("POST /diagram/convert", func() {
		It("rejects requests without a token", func() {
			resp := postJSON("/diagram/convert", server.ConvertDiagramRequest{ZenUMLCode: "A -> B"}, "")
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("converts and persists for an authenticated principal", func() {
			token, userID := login()

			resp := postJSON("/diagram/convert", server.ConvertDiagramRequest{ZenUMLCode: "A -> B\nB -> C\n"}, token)
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body server.ConvertDiagramResponse
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body.Success).To(BeTrue())
			Expect(body.DiagramID).NotTo(BeEmpty())
			Expect(body.DiagramData).NotTo(BeEmpty())

			stored, err := diagramRepository.FindByID(context.Background(), body.DiagramID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.OwnerID).To(Equal(userID))
		})

		It("stays 200-shaped on a pipeline failure and carries the stage code", func() {
			token, _ := login()
			renderer.Err = context.DeadlineExceeded

			resp := postJSON("/diagram/convert", server.ConvertDiagramRequest{ZenUMLCode: "A -> B"}, token)
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body server.ConvertDiagramResponse
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body.Success).To(BeFalse())
			Expect(body.ErrorCode).To(Equal("render"))
			Expect(body.DiagramID).To(BeEmpty())
			Expect(body.DiagramData).To(BeEmpty())
		})
	})

	Describe("GET /diagram/view/{diagramId}", func() {
		It("returns the display payload", func() {
			stored := stubs.NewDiagramStub().Get()
			diagramRepository.Put(stored)

			resp, err := ts.Client().Get(ts.URL + "/diagram/view/" + stored.ID)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body server.ViewDiagramResponse
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body.DiagramID).To(Equal(stored.ID))
			Expect(body.ZenUMLCode).To(Equal(stored.SourceText))
		})

		It("returns 404 for an unknown identifier", func() {
			resp, err := ts.Client().Get(ts.URL + "/diagram/view/unknown")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /diagram/export/jpg/{diagramId}", func() {
		It("describes the artifact for an existing diagram", func() {
			stored := stubs.NewDiagramStub().Get()
			diagramRepository.Put(stored)

			resp, err := ts.Client().Get(ts.URL + "/diagram/export/jpg/" + stored.ID)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body server.ExportDiagramJPGResponse
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body.Status).To(Equal("success"))
			Expect(body.FileSize).To(Equal(len(stored.Image)))
			Expect(body.ContentType).To(Equal("image/jpeg"))
		})

		It("returns 404 when the record has no image", func() {
			stored := stubs.NewDiagramStub().WithImage(nil).Get()
			diagramRepository.Put(stored)

			resp, err := ts.Client().Get(ts.URL + "/diagram/export/jpg/" + stored.ID)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("returns 404 for an unknown identifier", func() {
			resp, err := ts.Client().Get(ts.URL + "/diagram/export/jpg/unknown")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /diagram/download/{diagramId}.jpg", func() {
		It("streams the stored bytes with the JPEG content type", func() {
			image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x11, 0x22}
			stored := stubs.NewDiagramStub().WithImage(image).Get()
			diagramRepository.Put(stored)

			resp, err := ts.Client().Get(ts.URL + "/diagram/download/" + stored.ID + ".jpg")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("image/jpeg"))

			got, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(image))
		})
	})

	Describe("POST /auth/register and /auth/login", func() {
		It("registers once and rejects the duplicate email", func() {
			resp := postJSON("/auth/register", server.RegisterUserRequest{Username: "alice", Email: "a@x.com", Password: "p1"}, "")
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body server.RegisterUserResponse
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body.UserID).NotTo(BeEmpty())

			dup := postJSON("/auth/register", server.RegisterUserRequest{Username: "alice2", Email: "a@x.com", Password: "p2"}, "")
			defer dup.Body.Close()
			Expect(dup.StatusCode).To(Equal(http.StatusConflict))
		})

		It("returns 401 for bad credentials", func() {
			resp := postJSON("/auth/login", server.LoginUserRequest{Email: "a@x.com", Password: "nope"}, "")
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("returns a usable token for good credentials", func() {
			reg := postJSON("/auth/register", server.RegisterUserRequest{Username: "alice", Email: "a@x.com", Password: "p1"}, "")
			reg.Body.Close()

			resp := postJSON("/auth/login", server.LoginUserRequest{Email: "a@x.com", Password: "p1"}, "")
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body server.LoginUserResponse
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body.Token).NotTo(BeEmpty())

			convert := postJSON("/diagram/convert", server.ConvertDiagramRequest{ZenUMLCode: "A -> B"}, body.Token)
			defer convert.Body.Close()
			Expect(convert.StatusCode).To(Equal(http.StatusOK))
		})
	})
})
