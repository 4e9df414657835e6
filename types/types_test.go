package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Names
		assert.Equal(t, "Fluid", FLUID.String())
		assert.Equal(t, "Interface", INTERFACE.String())
		assert.Equal(t, "NoSlip", NO_SLIP.String())
		assert.Equal(t, "CellFlag(42)", CellFlag(42).String())
	}
	{ // Classification
		assert.True(t, FLUID.IsFluidLike())
		assert.True(t, INTERFACE.IsFluidLike())
		assert.False(t, EMPTY.IsFluidLike())
		assert.False(t, NO_SLIP.IsFluidLike())
		assert.True(t, NO_SLIP.IsBoundary())
		assert.True(t, INFLOW.IsBoundary())
		assert.False(t, EMPTY.IsBoundary())
	}
	{ // Parsing
		cf, err := NewCellFlag("Wall")
		require.NoError(t, err)
		assert.Equal(t, NO_SLIP, cf)
		cf, err = NewCellFlag("interface")
		require.NoError(t, err)
		assert.Equal(t, INTERFACE, cf)
		_, err = NewCellFlag("vacuum")
		assert.Error(t, err)
	}
}
