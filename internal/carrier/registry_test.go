package carrier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-track/internal/extract"
)

func TestResolveCanonicalAndAliases(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		id   string
		want string
	}{
		{"dhl", "dhl"},
		{"DHL", "dhl"},
		{"  dhl  ", "dhl"},
		{"dhl-express", "dhl"},
		{"fedex", "fedex"},
		{"fed-ex", "fedex"},
		{"FedEx", "fedex"},
		{"ups", "ups"},
		{"delta-cargo", "delta-cargo"},
		{"delta", "delta-cargo"},
		{"DeltaCargo", "delta-cargo"},
		{"expeditors", "expeditors"},
	}
	for _, tc := range cases {
		profile, ok := r.Resolve(tc.id)
		require.True(t, ok, "id %q", tc.id)
		assert.Equal(t, tc.want, profile.ID, "id %q", tc.id)
	}
}

func TestResolveUnsupported(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"", "zzz-unknown", "correos", "dhl express"} {
		_, ok := r.Resolve(id)
		assert.False(t, ok, "id %q", id)
	}
}

func TestIDsStableOrder(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"delta-cargo", "dhl", "expeditors", "fedex", "ups"}, r.IDs())
}

func TestTrackingURLEncodesCode(t *testing.T) {
	r := NewRegistry()
	profile, ok := r.Resolve("dhl")
	require.True(t, ok)
	assert.Equal(t,
		"https://www.dhl.com/mx-es/home/rastreo.html?tracking-id=AB+12%2F34",
		profile.TrackingURL(" AB 12/34 "))
}

func TestDHLBannerDestination(t *testing.T) {
	r := NewRegistry()
	profile, _ := r.Resolve("dhl")

	page := extract.Normalize("EN CAMINO A GUADALAJARA\nENTREGADO - MONTERREY, NL")
	got := extract.Extract(profile.Rules, page)
	require.NotNil(t, got.Destination)
	assert.Equal(t, "MONTERREY, NL", *got.Destination)
}

func TestFedexDeliveredPage(t *testing.T) {
	r := NewRegistry()
	profile, _ := r.Resolve("fedex")

	page := extract.Normalize("Estado de la entrega: Entregado\nEntregado el 27/08/2025\nSigned for by: R. GARCIA")
	got := extract.Extract(profile.Rules, page)

	require.NotNil(t, got.Status)
	assert.Equal(t, extract.StatusDelivered, *got.Status)
	require.NotNil(t, got.DeliveredAt)
	assert.Equal(t, "27/08/2025", *got.DeliveredAt)
	require.NotNil(t, got.SignedBy)
	assert.Equal(t, "R. GARCIA", *got.SignedBy)
}

func TestFedexEnglishETA(t *testing.T) {
	r := NewRegistry()
	profile, _ := r.Resolve("fedex")

	page := extract.Normalize("Delivery status: In transit\nEstimated delivery: August 27, 2025")
	got := extract.Extract(profile.Rules, page)

	require.NotNil(t, got.Status)
	assert.Equal(t, extract.StatusInTransit, *got.Status)
	require.NotNil(t, got.ETA)
	assert.Equal(t, "August 27, 2025", *got.ETA)
}

func TestUPSEstimatedDelivery(t *testing.T) {
	r := NewRegistry()
	profile, _ := r.Resolve("ups")

	page := extract.Normalize("Estado: En camino\nFecha de entrega estimada: 27 de agosto de 2025")
	got := extract.Extract(profile.Rules, page)

	require.NotNil(t, got.Status)
	assert.Equal(t, extract.StatusInTransit, *got.Status)
	require.NotNil(t, got.ETA)
	assert.Equal(t, "27 de agosto de 2025", *got.ETA)
}

func TestDeltaCargoStationCodes(t *testing.T) {
	r := NewRegistry()
	profile, _ := r.Resolve("delta-cargo")

	page := extract.Normalize("Shipment status: In transit\nOrigin: MEX\nDestination: ATL")
	got := extract.Extract(profile.Rules, page)

	require.NotNil(t, got.Status)
	assert.Equal(t, extract.StatusInTransit, *got.Status)
	require.NotNil(t, got.Origin)
	assert.Equal(t, "MEX", *got.Origin)
	require.NotNil(t, got.Destination)
	assert.Equal(t, "ATL", *got.Destination)
}

func TestExpeditorsStatusFallback(t *testing.T) {
	r := NewRegistry()
	profile, _ := r.Resolve("expeditors")

	// No labeled status line; the bilingual keyword fallback decides.
	page := extract.Normalize("Your shipment was delivered at the dock")
	got := extract.Extract(profile.Rules, page)

	require.NotNil(t, got.Status)
	assert.Equal(t, extract.StatusDelivered, *got.Status)
}
