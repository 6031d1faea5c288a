package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  Home & Garden ")
	require.NoError(t, err)
	assert.Equal(t, Category("Home & Garden"), c)

	_, err = NewCategory("grocery")
	assert.Error(t, err)
	_, err = NewCategory("")
	assert.Error(t, err)
}

func TestNewStoreName(t *testing.T) {
	_, err := NewStoreName("   ")
	assert.Error(t, err)

	n, err := NewStoreName(" Green Grocer ")
	require.NoError(t, err)
	assert.Equal(t, "Green Grocer", n.String())
}

func TestNewStoreMetrics(t *testing.T) {
	m, err := NewStoreMetrics(sustainability.Metrics{
		EnergyEfficiency:    0,
		WasteManagement:     5,
		ProductSourcing:     2.5,
		CarbonFootprint:     4.1,
		CommunityEngagement: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 4.1, m.Values().CarbonFootprint)

	_, err = NewStoreMetrics(sustainability.Metrics{CarbonFootprint: 5.1})
	assert.ErrorContains(t, err, "carbon_footprint")

	_, err = NewStoreMetrics(sustainability.Metrics{EnergyEfficiency: -0.1})
	assert.ErrorContains(t, err, "energy_efficiency")
}

func TestNewURL(t *testing.T) {
	u, err := NewURL("")
	require.NoError(t, err)
	assert.Empty(t, u)

	_, err = NewURL("not a url")
	assert.Error(t, err)
}

func TestStoreSnapshot(t *testing.T) {
	metrics, err := NewStoreMetrics(sustainability.Metrics{
		EnergyEfficiency:    3,
		WasteManagement:     4,
		ProductSourcing:     5,
		CarbonFootprint:     2,
		CommunityEngagement: 1,
	})
	require.NoError(t, err)

	snap := Store{ID: "abc", Name: "Eco Mart", Category: "Grocery", Metrics: metrics}.Snapshot()

	assert.Equal(t, "abc", snap.ID)
	assert.Equal(t, "Eco Mart", snap.Name)
	assert.Equal(t, 3.0, snap.SystemScore())
}
