package types

import (
	"fmt"
	"strings"
)

// CellFlag is the state of a single lattice cell. The set is closed: every
// switch over a CellFlag in the solver lists all of the values below.
type CellFlag uint8

const (
	FLUID CellFlag = iota
	INTERFACE
	EMPTY
	NO_SLIP
	INFLOW
)

var CellFlagNameMap = map[string]CellFlag{
	"fluid":     FLUID,
	"interface": INTERFACE,
	"empty":     EMPTY,
	"noslip":    NO_SLIP,
	"wall":      NO_SLIP,
	"inflow":    INFLOW,
	"in":        INFLOW,
}

var cellFlagPrintNames = []string{"Fluid", "Interface", "Empty", "NoSlip", "Inflow"}

func (cf CellFlag) String() string {
	if int(cf) >= len(cellFlagPrintNames) {
		return fmt.Sprintf("CellFlag(%d)", uint8(cf))
	}
	return cellFlagPrintNames[cf]
}

// IsFluidLike is true for the cells carrying fluid distributions.
func (cf CellFlag) IsFluidLike() bool {
	return cf == FLUID || cf == INTERFACE
}

// IsBoundary is true for the cells whose distributions are generated each step.
func (cf CellFlag) IsBoundary() bool {
	return cf == NO_SLIP || cf == INFLOW
}

func NewCellFlag(label string) (cf CellFlag, err error) {
	var ok bool
	if cf, ok = CellFlagNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use cell flag named %s", label)
	}
	return
}
