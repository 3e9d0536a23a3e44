// Package window generates the symmetric window functions used by the
// FIR filter designers.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBartlett
	TypeKaiser
)

// Cosine-sum coefficient tables, evaluated as sum_k c[k]*cos(k*2*pi*x).
var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name                string
	ENBW                float64
	HighestSidelobe     float64
	CoherentGain        float64
	CoherentGainSquared float64
}

var metadataByType = map[Type]Metadata{
	TypeRectangular: {Name: "Rectangular", ENBW: 1.0, HighestSidelobe: -13.3, CoherentGain: 1.0, CoherentGainSquared: 1.0},
	TypeHann:        {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5, CoherentGainSquared: 0.25},
	TypeHamming:     {Name: "Hamming", ENBW: 1.3628, HighestSidelobe: -42.7, CoherentGain: 0.54, CoherentGainSquared: 0.2916},
	TypeBlackman:    {Name: "Blackman", ENBW: 1.7268, HighestSidelobe: -58.1, CoherentGain: 0.42, CoherentGainSquared: 0.1764},
	TypeBartlett:    {Name: "Bartlett", ENBW: 1.3333, HighestSidelobe: -26.5, CoherentGain: 0.5, CoherentGainSquared: 0.25},
	TypeKaiser:      {Name: "Kaiser", ENBW: math.NaN(), HighestSidelobe: math.NaN(), CoherentGain: math.NaN(), CoherentGainSquared: math.NaN()},
}

// Option configures window generation.
type Option func(*config)

type config struct {
	beta float64
}

func defaultConfig() config {
	return config{beta: 0}
}

// WithBeta configures the Kaiser shape parameter. It is ignored by the
// fixed-shape window types.
func WithBeta(beta float64) Option {
	return func(c *config) {
		if beta >= 0 {
			c.beta = beta
		}
	}
}

// Generate returns symmetric window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length)
		out[i] = evalWindow(t, x, cfg)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, coeffs)
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// Hann returns Hann window coefficients.
func Hann(size int) ([]float64, error) {
	return Generate(TypeHann, size), validateLength(size)
}

// Hamming returns Hamming window coefficients.
func Hamming(size int) ([]float64, error) {
	return Generate(TypeHamming, size), validateLength(size)
}

// Blackman returns Blackman window coefficients.
func Blackman(size int) ([]float64, error) {
	return Generate(TypeBlackman, size), validateLength(size)
}

// Bartlett returns triangular window coefficients with zero endpoints.
func Bartlett(size int) ([]float64, error) {
	return Generate(TypeBartlett, size), validateLength(size)
}

// Kaiser returns Kaiser window coefficients.
func Kaiser(size int, beta float64) ([]float64, error) {
	if size <= 0 || beta < 0 {
		return nil, validateKaiser(size, beta)
	}

	return Generate(TypeKaiser, size, WithBeta(beta)), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBartlett:
		return 1 - math.Abs(2*x-1)
	case TypeKaiser:
		return kaiserAt(x, cfg.beta)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int) float64 {
	if size <= 1 {
		return 0
	}

	return float64(n) / float64(size-1)
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
