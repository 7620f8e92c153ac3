package analyst

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestOffset(t *testing.T) {
	g := NewWithT(t)

	off, ok := Offset(3, 20)
	g.Expect(ok).To(BeTrue())
	g.Expect(off).To(Equal(40))

	off, ok = Offset(0, 20)
	g.Expect(ok).To(BeTrue())
	g.Expect(off).To(Equal(0))

	_, ok = Offset(184467440737095517, 100)
	g.Expect(ok).To(BeFalse())

	_, ok = Offset(math.MaxInt, 1)
	g.Expect(ok).To(BeTrue())
}
