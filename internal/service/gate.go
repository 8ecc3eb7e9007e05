package service

import (
	"fmt"
	"strings"
)

var medicalKeywords = []string{
	"PATIENT", "HOSPITAL", "DOCTOR", "CLINICAL", "DIAGNOSIS",
	"GLUCOSE", "HBA1C", "BLOOD", "LAB", "REPORT", "PRESCRIPTION",
	"MEDICAL", "DISCHARGE", "SYMPTOM", "MEDICINE", "TEST", "RESULT",
	"HEMOGLOBIN", "CHOLESTEROL", "CREATININE", "THYROID", "URINE",
	"PATHOLOGY", "RADIOLOGY", "X-RAY", "CT", "MRI", "ULTRASOUND",
	"CONSULTATION", "TREATMENT", "SURGERY", "WARD", "OPD", "IPD",
}

var nonMedicalKeywords = []string{
	"PNR", "TRAIN", "RAILWAY", "RESERVATION", "TICKET", "ERS",
	"IRCTC", "COACH", "BERTH", "PASSENGER", "JOURNEY", "PLATFORM",
	"INVOICE", "GST", "GSTIN", "TAX INVOICE", "BILL", "RECEIPT",
	"PURCHASE ORDER", "VENDOR", "CUSTOMER ID", "PAYMENT",
}

// MedicalGate decides whether uploaded text is a medical document at all.
// Any non-medical keyword rejects outright; otherwise at least two medical
// keywords must be present.
type MedicalGate struct{}

// NewMedicalGate creates a new MedicalGate
func NewMedicalGate() *MedicalGate {
	return &MedicalGate{}
}

// Check returns whether the text passes the gate and a human-readable reason
// either way. The accepted reason doubles as the stored validation note.
func (mg *MedicalGate) Check(text string) (bool, string) {
	upper := strings.ToUpper(text)

	var medicalHits []string
	for _, keyword := range medicalKeywords {
		if strings.Contains(upper, keyword) {
			medicalHits = append(medicalHits, keyword)
		}
	}

	var nonMedicalHits []string
	for _, keyword := range nonMedicalKeywords {
		if strings.Contains(upper, keyword) {
			nonMedicalHits = append(nonMedicalHits, keyword)
		}
	}

	if len(nonMedicalHits) > 0 {
		shown := nonMedicalHits
		if len(shown) > 3 {
			shown = shown[:3]
		}

		return false, fmt.Sprintf("Non-medical content detected: %s", strings.Join(shown, ", "))
	}

	if len(medicalHits) < 2 {
		return false, fmt.Sprintf("Insufficient medical content (found %d medical keywords, need 2+)", len(medicalHits))
	}

	return true, fmt.Sprintf("Medical document verified (%d medical keywords found)", len(medicalHits))
}
