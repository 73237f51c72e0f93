package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/physic"
)

func TestToMbar(t *testing.T) {
	tests := []struct {
		p    physic.Pressure
		want float64
	}{
		{101325 * physic.Pascal, 1013.25},
		{100 * physic.KiloPascal, 1000},
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, toMbar(tt.p), 1e-9, "pressure %s", tt.p)
	}
}
