package ambulance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	d := NewDirectory()

	units := d.List()
	require.Len(t, units, 5)

	for _, u := range units {
		assert.Equal(t, "available", u.Status)
		assert.NotEmpty(t, u.Driver.Phone)
		assert.NotEmpty(t, u.Equipment)
	}
}

func TestGet(t *testing.T) {
	d := NewDirectory()

	u, err := d.Get("AMB-105")
	require.NoError(t, err)
	assert.Equal(t, "KA-05-MN-9876", u.VehicleNumber)
	assert.Equal(t, "Advanced Life Support", u.Type)
	assert.Equal(t, "Amit Sharma", u.Driver.Name)

	_, err = d.Get("AMB-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	d := NewDirectory()

	u, err := d.UpdateStatus("AMB-208", "dispatched")
	require.NoError(t, err)
	assert.Equal(t, "dispatched", u.Status)

	after, err := d.Get("AMB-208")
	require.NoError(t, err)
	assert.Equal(t, "dispatched", after.Status)

	_, err = d.UpdateStatus("AMB-999", "dispatched")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReturnsCopy(t *testing.T) {
	d := NewDirectory()

	units := d.List()
	units[0].Status = "offline"

	fresh, err := d.Get(units[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "available", fresh.Status)
}
