package render_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"zenumljpg/src/domain"
	"zenumljpg/src/services/render"
)

var _ = Describe("ToDOT", func() {
	It("emits one node statement per label and one edge statement per pair", func() {
		graph := domain.NewGraph()
		graph.AddEdge("A", "B")
		graph.AddEdge("B", "C")

		dot := render.ToDOT(graph)

		Expect(dot).To(HavePrefix("digraph G {"))
		Expect(dot).To(ContainSubstring("\"A\";"))
		Expect(dot).To(ContainSubstring("\"B\";"))
		Expect(dot).To(ContainSubstring("\"C\";"))
		Expect(dot).To(ContainSubstring("\"A\" -> \"B\";"))
		Expect(dot).To(ContainSubstring("\"B\" -> \"C\";"))
		Expect(dot).To(HaveSuffix("}\n"))
	})

	It("keeps parallel edges as separate statements", func() {
		graph := domain.NewGraph()
		graph.AddEdge("A", "B")
		graph.AddEdge("A", "B")

		dot := render.ToDOT(graph)

		Expect(strings.Count(dot, "\"A\" -> \"B\";")).To(Equal(2))
	})

	It("quotes labels containing spaces and special characters", func() {
		graph := domain.NewGraph()
		graph.AddEdge("Order Service", "Payment \"Gateway\"")

		dot := render.ToDOT(graph)

		Expect(dot).To(ContainSubstring("\"Order Service\""))
		Expect(dot).To(ContainSubstring("\\\"Gateway\\\""))
	})

	It("produces a valid empty document for an empty graph", func() {
		dot := render.ToDOT(domain.NewGraph())

		Expect(dot).NotTo(ContainSubstring("->"))
		Expect(dot).To(HavePrefix("digraph G {"))
		Expect(dot).To(HaveSuffix("}\n"))
	})
})
