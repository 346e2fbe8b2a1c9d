package main

import (
	"fmt"
)

type units struct {
	scale uint64
	base  string
	units []string
}

var (
	timeUnitsUs = &units{
		scale: 1000,
		base:  "us",
		units: []string{"ms", "s"},
	}
	timeUnitsS = &units{
		scale: 60,
		base:  "s",
		units: []string{"m", "h"},
	}
)

func formatUnits(n float64, m *units, prec int) string {
	amt := n
	unit := m.base

	scale := float64(m.scale) * 0.85

	for i := 0; i < len(m.units) && amt >= scale; i++ {
		amt /= float64(m.scale)
		unit = m.units[i]
	}
	return fmt.Sprintf("%.*f%s", prec, amt, unit)
}

// FormatTimeUs renders a duration given in microseconds with a unit
// picked for readability.
func FormatTimeUs(n float64) string {
	units := timeUnitsUs
	if n >= 1000000.0 {
		n /= 1000000.0
		units = timeUnitsS
	}
	return formatUnits(n, units, 2)
}

// FormatTimeMs is FormatTimeUs for millisecond inputs.
func FormatTimeMs(n float64) string {
	return FormatTimeUs(n * 1000)
}
