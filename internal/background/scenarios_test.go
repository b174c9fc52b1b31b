package background_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sdgft/internal/background"
	"github.com/san-kum/sdgft/internal/geometry"
	"github.com/san-kum/sdgft/internal/params"
)

var _ = Describe("Background solver", func() {
	var solver background.Solver

	BeforeEach(func() {
		solver = background.Default()
	})

	Describe("expansion rate", func() {
		It("agrees between redshift and scale-factor forms at z = 0", func() {
			hz, err := solver.HubbleAtZ(0)
			Expect(err).NotTo(HaveOccurred())
			ha, err := solver.Hubble(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(hz).To(Equal(ha))
		})

		It("is positive, finite and steep between recombination and today", func() {
			h0, err := solver.HubbleAtZ(0)
			Expect(err).NotTo(HaveOccurred())
			hcmb, err := solver.HubbleAtZ(1100)
			Expect(err).NotTo(HaveOccurred())

			for _, h := range []float64{h0, hcmb} {
				Expect(h).To(BeNumerically(">", 0))
				Expect(math.IsInf(h, 0) || math.IsNaN(h)).To(BeFalse())
			}
			Expect(hcmb / h0).To(BeNumerically(">", 100))
		})

		It("rejects non-physical inputs as validation errors", func() {
			for _, a := range []float64{0, -1, math.NaN()} {
				_, err := solver.Hubble(a)
				Expect(err).To(MatchError(background.ErrInvalidScaleFactor))
				Expect(err).NotTo(MatchError(background.ErrUnphysical))
			}
			_, err := solver.HubbleAtZ(-1)
			Expect(err).To(MatchError(background.ErrInvalidRedshift))
		})

		It("reports a degenerate expansion instead of a non-finite rate", func() {
			for _, z := range []float64{1e150, 1e200} {
				h, err := solver.HubbleAtZ(z)
				Expect(err).To(MatchError(background.ErrDegenerate), "z = %g gave H = %g", z, h)
				Expect(err).NotTo(MatchError(background.ErrUnphysical))
			}
			_, err := solver.HubbleSquared(1e-200)
			Expect(err).To(MatchError(background.ErrDegenerate))
			_, err = solver.Acceleration(1e-200)
			Expect(err).To(MatchError(background.ErrDegenerate))
		})
	})

	Describe("distance modulus", func() {
		It("is strictly increasing in z", func() {
			prev := math.Inf(-1)
			for z := 0.05; z <= 10; z += 0.05 {
				mu, err := solver.DistanceModulus(z)
				Expect(err).NotTo(HaveOccurred())
				Expect(mu).To(BeNumerically(">", prev), "z = %g", z)
				prev = mu
			}
		})

		It("requires z > 0", func() {
			_, err := solver.DistanceModulus(0)
			Expect(err).To(MatchError(background.ErrInvalidRedshift))
		})
	})

	Describe("age of the universe", func() {
		It("lands between 1 and 50 Gyr", func() {
			age, err := solver.Age()
			Expect(err).NotTo(HaveOccurred())
			Expect(age.Skipped).To(BeZero())
			Expect(age.Gyr()).To(BeNumerically(">", 1))
			Expect(age.Gyr()).To(BeNumerically("<", 50))
		})
	})

	Describe("tension resolution", func() {
		It("is deterministic", func() {
			first, err := solver.ResolveTension()
			Expect(err).NotTo(HaveOccurred())
			second, err := solver.ResolveTension()
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("places the late estimate above the early one", func() {
			t, err := solver.ResolveTension()
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Late).To(BeNumerically(">", t.Early))
			Expect(t.Percent).To(BeNumerically("~", 100*(t.Late-t.Early)/t.Early, 1e-9))
		})
	})

	Context("with a strongly closed geometry", func() {
		var closed background.Solver

		BeforeEach(func() {
			cosmo := params.DefaultCosmology()
			cosmo.OmegaK = -5
			var err error
			closed, err = background.New(params.DefaultModel(), cosmo, params.DefaultNumerics(), params.DefaultConstants())
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports H² < 0 as an unphysical failure value", func() {
			_, err := closed.Hubble(1)
			Expect(err).To(MatchError(background.ErrUnphysical))

			var ue *background.UnphysicalError
			Expect(errors.As(err, &ue)).To(BeTrue())
			Expect(ue.A).To(Equal(1.0))
			Expect(ue.H2).To(BeNumerically("<", 0))
		})

		It("propagates through the distance integral", func() {
			_, err := closed.LuminosityDistance(1)
			Expect(err).To(MatchError(background.ErrUnphysical))
		})

		It("propagates through the age integral by default", func() {
			_, err := closed.Age()
			Expect(err).To(MatchError(background.ErrUnphysical))
		})

		It("skips and counts unphysical samples when asked to", func() {
			n := params.DefaultNumerics()
			n.AgePolicy = params.AgeSkipUnphysical
			skipping, err := closed.WithNumerics(n)
			Expect(err).NotTo(HaveOccurred())

			age, err := skipping.Age()
			Expect(err).NotTo(HaveOccurred())
			Expect(age.Skipped).To(BeNumerically(">", 0))
			Expect(age.Skipped).To(BeNumerically("<", age.Samples))
			Expect(age.Seconds).To(BeNumerically(">", 0))
		})
	})
})

var _ = Describe("Fractal dimension today", func() {
	It("sits strictly between 2 and 2.8", func() {
		d := geometry.FractalDimension(0, params.DefaultModel())
		Expect(d).To(BeNumerically(">", 2.0))
		Expect(d).To(BeNumerically("<", 2.8))
	})
})
