//go:build unit

package vehicle_test

import (
	"testing"

	"rentcar-backend/internal/domain/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHold(t *testing.T) {
	tests := []struct {
		status vehicle.Status
		errIs  error
	}{
		{status: vehicle.StatusAvailable},
		{status: vehicle.StatusReserved, errIs: vehicle.ErrNotAvailable},
		{status: vehicle.StatusRented, errIs: vehicle.ErrNotAvailable},
		{status: vehicle.StatusMaintenance, errIs: vehicle.ErrNotAvailable},
		{status: vehicle.StatusOutOfService, errIs: vehicle.ErrNotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			v := vehicle.ReconstructVehicle(7, "34 ABC 007", 500, 250, tt.status)

			err := v.Hold()

			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Equal(t, tt.status, v.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vehicle.StatusReserved, v.Status())
			assert.False(t, v.IsAvailable())
		})
	}
}

func TestNewStatus(t *testing.T) {
	s, err := vehicle.NewStatus("maintenance")
	require.NoError(t, err)
	assert.Equal(t, vehicle.StatusMaintenance, s)

	_, err = vehicle.NewStatus("scrapped")
	assert.ErrorIs(t, err, vehicle.ErrInvalidStatus)
}
