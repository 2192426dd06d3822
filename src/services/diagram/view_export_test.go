package diagram_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"zenumljpg/src/domain"
	"zenumljpg/src/services/diagram"
	"zenumljpg/src/services/zenuml"
	"zenumljpg/src/test_artefacts/fakes"
	"zenumljpg/src/test_artefacts/stubs"
)

var _ = Describe("View and Export", func() {
	var (
		ctx               context.Context
		diagramRepository *fakes.InMemoryDiagramRepository
		service           *diagram.DiagramService
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	BeforeEach(func() {
		ctx = context.Background()
		diagramRepository = fakes.NewInMemoryDiagramRepository()

		service = diagram.NewDiagramService(
			logger,
			zenuml.NewExtractor(),
			fakes.NewStubRenderer(),
			diagramRepository,
			nil,
			"http://localhost:8888/",
		)
	})

	Describe("View", func() {
		Context("existing diagram", func() {
			It("returns the stored source text byte-for-byte", func() {
				sourceText := "  A -> B\n\n\tB -> C\n"
				stored := stubs.NewDiagramStub().WithSourceText(sourceText).Get()
				diagramRepository.Put(stored)

				out, err := service.View(ctx, stored.ID)

				Expect(err).NotTo(HaveOccurred())
				Expect(out.SourceText).To(Equal(sourceText))
			})

			It("shapes the display payload with an ISO-8601 timestamp and a resolvable image URL", func() {
				stored := stubs.NewDiagramStub().Get()
				diagramRepository.Put(stored)

				out, err := service.View(ctx, stored.ID)

				Expect(err).NotTo(HaveOccurred())
				Expect(out.DiagramID).To(Equal(stored.ID))
				Expect(out.Title).To(Equal(stored.Title))
				Expect(out.ImageURL).To(Equal("http://localhost:8888/diagram/download/" + stored.ID + ".jpg"))

				parsed, parseErr := time.Parse(time.RFC3339, out.CreatedAt)
				Expect(parseErr).NotTo(HaveOccurred())
				Expect(parsed).To(BeTemporally("~", stored.CreatedAt, time.Second))
			})

			It("is idempotent: two views return identical results", func() {
				stored := stubs.NewDiagramStub().Get()
				diagramRepository.Put(stored)

				first, err := service.View(ctx, stored.ID)
				Expect(err).NotTo(HaveOccurred())
				second, err := service.View(ctx, stored.ID)
				Expect(err).NotTo(HaveOccurred())

				Expect(cmp.Diff(first, second)).To(BeEmpty())
			})
		})

		Context("unknown identifier", func() {
			It("fails with not-found", func() {
				_, err := service.View(ctx, "nope")

				Expect(err).To(MatchError(domain.ErrDiagramNotFound))
			})
		})
	})

	Describe("Export", func() {
		Context("existing diagram with an image", func() {
			It("describes the downloadable artifact", func() {
				image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03}
				stored := stubs.NewDiagramStub().WithImage(image).Get()
				diagramRepository.Put(stored)

				out, err := service.Export(ctx, stored.ID)

				Expect(err).NotTo(HaveOccurred())
				Expect(out.Status).To(Equal("success"))
				Expect(out.FileSize).To(Equal(len(image)))
				Expect(out.ContentType).To(Equal("image/jpeg"))
				Expect(out.DownloadURL).To(Equal("http://localhost:8888/diagram/download/" + stored.ID + ".jpg"))
			})

			It("is idempotent: two exports return identical results", func() {
				stored := stubs.NewDiagramStub().Get()
				diagramRepository.Put(stored)

				first, err := service.Export(ctx, stored.ID)
				Expect(err).NotTo(HaveOccurred())
				second, err := service.Export(ctx, stored.ID)
				Expect(err).NotTo(HaveOccurred())

				Expect(cmp.Diff(first, second)).To(BeEmpty())
			})
		})

		Context("record without stored bytes", func() {
			It("fails with the same 404-class kind as a missing record", func() {
				stored := stubs.NewDiagramStub().WithImage(nil).Get()
				diagramRepository.Put(stored)

				_, err := service.Export(ctx, stored.ID)

				Expect(err).To(MatchError(domain.ErrDiagramImageMissing))
			})
		})

		Context("unknown identifier", func() {
			It("fails with not-found", func() {
				_, err := service.Export(ctx, "nope")

				Expect(err).To(MatchError(domain.ErrDiagramNotFound))
			})
		})
	})

	Describe("Image", func() {
		It("returns the stored bytes unchanged", func() {
			image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0xAA}
			stored := stubs.NewDiagramStub().WithImage(image).Get()
			diagramRepository.Put(stored)

			got, err := service.Image(ctx, stored.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(image))
		})
	})
})
