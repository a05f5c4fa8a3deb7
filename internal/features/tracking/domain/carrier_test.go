package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDetectCarrier_Correios verifies the domestic postal format.
func TestDetectCarrier_Correios(t *testing.T) {
	carrier := DetectCarrier("NM985773507BR")

	assert.Equal(t, "Correios", carrier.Name)
	assert.Equal(t, 2151, carrier.Code)
}

// TestDetectCarrier_NormalizesInput verifies trimming and upper-casing.
func TestDetectCarrier_NormalizesInput(t *testing.T) {
	carrier := DetectCarrier("  nm985773507br ")

	assert.Equal(t, "Correios", carrier.Name)
}

// TestDetectCarrier_Loggi verifies the 8-char alphanumeric format.
func TestDetectCarrier_Loggi(t *testing.T) {
	carrier := DetectCarrier("GBEFUWCT")

	assert.Equal(t, "Loggi", carrier.Name)
	assert.Equal(t, 100457, carrier.Code)
}

// TestDetectCarrier_LoggiExcludesBRSuffix verifies 8-char codes ending
// in BR are not misclassified as Loggi.
func TestDetectCarrier_LoggiExcludesBRSuffix(t *testing.T) {
	carrier := DetectCarrier("AB1234BR")

	assert.NotEqual(t, "Loggi", carrier.Name)
}

// TestDetectCarrier_Jadlog verifies the 14-digit format.
func TestDetectCarrier_Jadlog(t *testing.T) {
	carrier := DetectCarrier("10000000000000")

	assert.Equal(t, "Jadlog", carrier.Name)
	assert.Equal(t, 100013, carrier.Code)
}

// TestDetectCarrier_TotalExpress verifies the 3-letter + 11-digit format.
func TestDetectCarrier_TotalExpress(t *testing.T) {
	carrier := DetectCarrier("ABC12345678901")

	assert.Equal(t, "Total Express", carrier.Name)
	assert.Equal(t, 190232, carrier.Code)
}

// TestDetectCarrier_Cainiao verifies both the LP and CAINIAO prefixes.
func TestDetectCarrier_Cainiao(t *testing.T) {
	assert.Equal(t, "Cainiao", DetectCarrier("LP12345678901234").Name)
	assert.Equal(t, "Cainiao", DetectCarrier("CAINIAO987654").Name)
}

// TestDetectCarrier_Yanwen verifies the YT + 16-digit format.
func TestDetectCarrier_Yanwen(t *testing.T) {
	carrier := DetectCarrier("YT1234567890123456")

	assert.Equal(t, "Yanwen", carrier.Name)
	assert.Equal(t, 190012, carrier.Code)
}

// TestDetectCarrier_4PX verifies the 4PX prefix.
func TestDetectCarrier_4PX(t *testing.T) {
	carrier := DetectCarrier("4PX300112345678")

	assert.Equal(t, "4PX", carrier.Name)
	assert.Equal(t, 190002, carrier.Code)
}

// TestDetectCarrier_ChinaPost verifies the international format with CN suffix.
func TestDetectCarrier_ChinaPost(t *testing.T) {
	carrier := DetectCarrier("RB123456789CN")

	assert.Equal(t, "China Post", carrier.Name)
	assert.Equal(t, 3011, carrier.Code)
}

// TestDetectCarrier_International verifies non-CN country suffixes fall
// back to auto-detect.
func TestDetectCarrier_International(t *testing.T) {
	carrier := DetectCarrier("RB123456789US")

	assert.Equal(t, "Internacional", carrier.Name)
	assert.Equal(t, 0, carrier.Code)
}

// TestDetectCarrier_Fallback verifies every input yields a result.
func TestDetectCarrier_Fallback(t *testing.T) {
	for _, input := range []string{"", "???", "123", "not a tracking number"} {
		carrier := DetectCarrier(input)
		assert.Equal(t, "Auto", carrier.Name, "input %q", input)
		assert.Equal(t, 0, carrier.Code)
	}
}
