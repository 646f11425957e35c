package ilp

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qubo-tools/intqm/pkg/iqm"
	"github.com/qubo-tools/intqm/pkg/sampler/exact"
)

const programYAML = `
c: [1, 2]
a:
- [1, 1]
b: [3]
kinds: [uint, uint]
penalty: 10
precision:
  uint_precision: 2
`

// minimize x_0 + 2·x_1 subject to x_0 + x_1 = 3, 0 <= x_i <= 3
func transport() *Program {
	two := 2
	return &Program{
		C:         []float64{1, 2},
		A:         [][]float64{{1, 1}},
		B:         []float64{3},
		Kinds:     []iqm.Kind{iqm.UnsignedInteger, iqm.UnsignedInteger},
		Penalty:   10,
		Precision: iqm.Parameters{UnsignedPrecision: &two},
	}
}

var _ = Describe("Program", func() {
	Context("Parse", func() {
		It("decodes YAML", func() {
			p, err := Parse([]byte(programYAML))
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(transport()))
		})

		It("rejects unknown kinds", func() {
			_, err := Parse([]byte("c: [1]\nkinds: [float]\n"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Load", func() {
		It("reads a file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "program.yaml")
			Expect(os.WriteFile(path, []byte(programYAML), 0o600)).To(Succeed())

			p, err := Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.NumVariables()).To(Equal(2))
			Expect(p.NumConstraints()).To(Equal(1))
		})

		It("names the file on failure", func() {
			path := filepath.Join(GinkgoT().TempDir(), "missing.yaml")
			_, err := Load(path)
			Expect(err).To(MatchError(ContainSubstring(path)))
		})
	})

	DescribeTable("Validate",
		func(p *Program, valid bool) {
			err := p.Validate()
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(HaveOccurred())
			}
		},
		Entry("valid", transport(), true),
		Entry("unconstrained", &Program{C: []float64{1}, Kinds: []iqm.Kind{iqm.Binary}}, true),
		Entry("no variables", &Program{}, false),
		Entry("missing kind", &Program{C: []float64{1, 1}, Kinds: []iqm.Kind{iqm.Binary}}, false),
		Entry("unspecified kind", &Program{C: []float64{1}, Kinds: []iqm.Kind{iqm.Unspecified}}, false),
		Entry("short row", &Program{C: []float64{1, 1}, Kinds: []iqm.Kind{iqm.Binary, iqm.Binary}, A: [][]float64{{1}}, B: []float64{1}}, false),
		Entry("missing right hand side", &Program{C: []float64{1}, Kinds: []iqm.Kind{iqm.Binary}, A: [][]float64{{1}}}, false),
		Entry("negative penalty", &Program{C: []float64{1}, Kinds: []iqm.Kind{iqm.Binary}, Penalty: -1}, false),
	)

	Context("Encode", func() {
		It("reproduces the penalized objective", func() {
			p := transport()
			model, err := p.Encode()
			Expect(err).NotTo(HaveOccurred())
			Expect(model.Variables()).To(Equal([]iqm.Identifier{"x_0", "x_1"}))
			Expect(model.BQM().NumVariables()).To(Equal(4))

			for x0 := int64(0); x0 <= 3; x0++ {
				for x1 := int64(0); x1 <= 3; x1++ {
					values := map[iqm.Identifier]int64{"x_0": x0, "x_1": x1}
					e, err := model.Energy(values)
					Expect(err).NotTo(HaveOccurred())

					residual := float64(x0 + x1 - 3)
					Expect(e).To(BeNumerically("~", float64(x0+2*x1)+10*residual*residual, 1e-9))

					objective, feasible, err := p.Evaluate(values)
					Expect(err).NotTo(HaveOccurred())
					Expect(objective).To(Equal(float64(x0 + 2*x1)))
					Expect(feasible).To(Equal(x0+x1 == 3))
				}
			}
		})

		It("uses the default penalty", func() {
			p := transport()
			p.Penalty = 0
			model, err := p.Encode()
			Expect(err).NotTo(HaveOccurred())

			e, err := model.Energy(map[iqm.Identifier]int64{"x_0": 0, "x_1": 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(e).To(Equal(9 * DefaultPenalty))
		})

		It("lets options override the program precision", func() {
			model, err := transport().Encode(iqm.WithUnsignedPrecision(3))
			Expect(err).NotTo(HaveOccurred())
			Expect(model.UnsignedPrecision()).To(Equal(3))
			Expect(model.BQM().NumVariables()).To(Equal(6))
		})

		It("encodes an unconstrained program as its objective", func() {
			p := &Program{C: []float64{2, -1}, Kinds: []iqm.Kind{iqm.Binary, iqm.SignedInteger}}
			model, err := p.Encode()
			Expect(err).NotTo(HaveOccurred())
			Expect(model.BQM().NumInteractions()).To(Equal(0))
			Expect(model.BQM().Offset()).To(Equal(0.0))
		})

		It("refuses invalid programs", func() {
			_, err := (&Program{}).Encode()
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Sample", func() {
		It("finds the optimum with the exact sampler", func() {
			p := transport()
			s, err := p.Sample(context.Background(), exact.New(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(16))

			first, ok := s.First()
			Expect(ok).To(BeTrue())
			Expect(first.Energy).To(BeNumerically("~", 3, 1e-9))

			values := map[iqm.Identifier]int64{}
			for k, id := range s.Variables {
				values[id] = first.Sample[k]
			}
			Expect(values).To(Equal(map[iqm.Identifier]int64{"x_0": 3, "x_1": 0}))
			_, feasible, err := p.Evaluate(values)
			Expect(err).NotTo(HaveOccurred())
			Expect(feasible).To(BeTrue())
		})
	})
})
