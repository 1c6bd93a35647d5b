package extract

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textRule(field Field, patterns ...string) Rule {
	candidates := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		candidates = append(candidates, regexp.MustCompile(p))
	}
	return Rule{Field: field, Kind: KindText, Candidates: candidates}
}

func TestExtractLastCaptureGroupWins(t *testing.T) {
	rules := []Rule{
		textRule(FieldETA, `(?i)(entrega estimada|estimated delivery)\s*:\s*(\S+)`),
	}
	got := Extract(rules, "Entrega estimada: 27/08/2025")
	require.NotNil(t, got.ETA)
	assert.Equal(t, "27/08/2025", *got.ETA)
}

func TestExtractCandidateOrder(t *testing.T) {
	rules := []Rule{
		textRule(FieldDestination,
			`(?m)^ENTREGADO[ -]+([A-Z ]{3,})$`,
			`(?m)^EN CAMINO A\s+([A-Z ]{3,})$`,
		),
	}
	// Both banners are present; the earlier candidate decides.
	page := "EN CAMINO A GUADALAJARA\nENTREGADO - MONTERREY"
	got := Extract(rules, page)
	require.NotNil(t, got.Destination)
	assert.Equal(t, "MONTERREY", *got.Destination)
}

func TestExtractFirstRulePerFieldWins(t *testing.T) {
	rules := []Rule{
		textRule(FieldOrigin, `Origen:\s*(\S+)`),
		textRule(FieldOrigin, `From:\s*(\S+)`),
	}
	got := Extract(rules, "Origen: CDMX\nFrom: Chicago")
	require.NotNil(t, got.Origin)
	assert.Equal(t, "CDMX", *got.Origin)
}

func TestExtractFieldsAreIndependent(t *testing.T) {
	rules := []Rule{
		{Field: FieldStatus, Kind: KindStatus, Candidates: []*regexp.Regexp{
			regexp.MustCompile(`Estado:\s*([^\n]+)`),
		}},
		textRule(FieldSignedBy, `Firmado por:\s*([^\n]+)`),
		textRule(FieldDestination, `Destino:\s*([^\n]+)`),
	}
	got := Extract(rules, "Estado: Entregado\nDestino: MTY")
	require.NotNil(t, got.Status)
	assert.Equal(t, StatusDelivered, *got.Status)
	assert.Nil(t, got.SignedBy)
	require.NotNil(t, got.Destination)
	assert.Equal(t, "MTY", *got.Destination)
}

func TestExtractNoMatchesYieldsEmptyResult(t *testing.T) {
	rules := []Rule{
		textRule(FieldOrigin, `Origen:\s*(\S+)`),
	}
	got := Extract(rules, "nothing relevant here")
	assert.Equal(t, Result{}, got)
}

func TestExtractDiscardsUnparsableDates(t *testing.T) {
	rules := []Rule{
		{Field: FieldETA, Kind: KindDate, Candidates: []*regexp.Regexp{
			regexp.MustCompile(`(?i)estimated delivery:\s*([^\n]+)`),
		}},
	}
	got := Extract(rules, "Estimated delivery: tomorrow afternoon")
	assert.Nil(t, got.ETA)

	got = Extract(rules, "Estimated delivery: 27/08/2025")
	require.NotNil(t, got.ETA)
	assert.Equal(t, "27/08/2025", *got.ETA)
}

func TestExtractKeepsDateSpanVerbatim(t *testing.T) {
	rules := []Rule{
		{Field: FieldDeliveredAt, Kind: KindDate, Candidates: []*regexp.Regexp{
			regexp.MustCompile(`(?i)delivered on\s*([^\n]+)`),
		}},
	}
	got := Extract(rules, "Delivered on August 27, 2025")
	require.NotNil(t, got.DeliveredAt)
	assert.Equal(t, "August 27, 2025", *got.DeliveredAt)
}

func TestExtractSkipsBoilerplateCaptures(t *testing.T) {
	rules := []Rule{
		textRule(FieldDestination, `(?m)^([A-Za-z ]{5,})$`, `Destino:\s*([^\n]+)`),
	}
	got := Extract(rules, "Skip to main content\nDestino: Monterrey")
	require.NotNil(t, got.Destination)
	assert.Equal(t, "Monterrey", *got.Destination)
}

func TestExtractSkipsEmptyCaptures(t *testing.T) {
	rules := []Rule{
		textRule(FieldSignedBy, `Firmado por:[ \t]*([^\n]*)`, `Recibido por:\s*(\S+)`),
	}
	got := Extract(rules, "Firmado por:\nRecibido por: PEREZ")
	require.NotNil(t, got.SignedBy)
	assert.Equal(t, "PEREZ", *got.SignedBy)
}

func TestExtractUnknownStatusIsStillAStatus(t *testing.T) {
	rules := []Rule{
		{Field: FieldStatus, Kind: KindStatus, Candidates: []*regexp.Regexp{
			regexp.MustCompile(`Estado:\s*([^\n]+)`),
		}},
	}
	got := Extract(rules, "Estado: Retenido en aduana")
	require.NotNil(t, got.Status)
	assert.Equal(t, StatusUnknown, *got.Status)
}
