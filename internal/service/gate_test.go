package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedicalGate_AcceptsMedicalText(t *testing.T) {
	gate := NewMedicalGate()

	ok, reason := gate.Check("Patient admitted to hospital. Lab report attached with glucose results.")

	assert.True(t, ok)
	assert.Contains(t, reason, "Medical document verified")
}

func TestMedicalGate_RejectsNonMedicalKeywords(t *testing.T) {
	gate := NewMedicalGate()

	// Railway keywords reject even though "passenger" text mentions nothing
	// medical at all.
	ok, reason := gate.Check("PNR 8412956203 TRAIN 12951 COACH B4 BERTH 32 passenger details")

	assert.False(t, ok)
	assert.Equal(t, "Non-medical content detected: PNR, TRAIN, COACH", reason)
}

func TestMedicalGate_NonMedicalWinsOverMedical(t *testing.T) {
	gate := NewMedicalGate()

	// An invoice mentioning a hospital is still an invoice.
	ok, reason := gate.Check("TAX INVOICE issued to City Hospital for lab equipment purchase")

	assert.False(t, ok)
	assert.Contains(t, reason, "Non-medical content detected")
}

func TestMedicalGate_RequiresTwoMedicalKeywords(t *testing.T) {
	gate := NewMedicalGate()

	ok, reason := gate.Check("The patient went home.")

	assert.False(t, ok)
	assert.Equal(t, "Insufficient medical content (found 1 medical keywords, need 2+)", reason)
}

func TestMedicalGate_EmptyText(t *testing.T) {
	gate := NewMedicalGate()

	ok, reason := gate.Check("")

	assert.False(t, ok)
	assert.Equal(t, "Insufficient medical content (found 0 medical keywords, need 2+)", reason)
}

func TestMedicalGate_CaseInsensitive(t *testing.T) {
	gate := NewMedicalGate()

	ok, _ := gate.Check("patient glucose test")

	assert.True(t, ok)
}
