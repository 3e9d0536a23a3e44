package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/filter/design"
)

func ExampleIIRAsBA() {
	ba, err := design.IIRAsBA(design.IIRSpec{
		Order:     1,
		Prototype: design.PrototypeButterworth,
		Band:      design.Lowpass,
		R1:        0.5,
	})
	if err != nil {
		panic(err)
	}

	b := ba.Numerator()
	fmt.Printf("b = [%.1f %.1f]\n", b[0], b[1])

	// Output:
	// b = [0.5 0.5]
}

func ExampleZPKToSOS() {
	z, err := design.IIR(design.IIRSpec{
		Order:     7,
		Prototype: design.PrototypeButterworth,
		Band:      design.Lowpass,
		R1:        0.25,
	})
	if err != nil {
		panic(err)
	}

	sos, err := design.ZPKToSOS(z)
	if err != nil {
		panic(err)
	}
	fmt.Println(sos.Sections(), "sections")

	// Output:
	// 4 sections
}
