package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControllerSequentialRead(t *testing.T) {
	c := NewController(func() uint8 { return ButtonA | ButtonStart | ButtonLeft })

	c.Write(1) // strobe high, latches
	c.Write(0) // strobe low, freezes

	want := []uint8{1, 0, 0, 1, 0, 0, 1, 0} // A, B, Select, Start, Up, Down, Left, Right
	for i, w := range want {
		require.Equal(t, w, c.Read(), "bit %d", i)
	}
}

func TestControllerReadPast8ShiftsInOnes(t *testing.T) {
	c := NewController(func() uint8 { return 0 })
	c.Write(1)
	c.Write(0)

	for i := 0; i < 8; i++ {
		c.Read()
	}
	require.Equal(t, uint8(1), c.Read(), "reads past the 8th shift in 1s")
}

func TestControllerNoPollFunc(t *testing.T) {
	c := &Controller{}
	c.Write(1)
	require.Equal(t, uint8(0), c.Read(), "nil Poll reads as all-zero rather than panicking")
}
