package domain

import (
	"regexp"
	"strings"
)

// Carrier identifies a shipping carrier for the aggregator.
// Code 0 means "let the aggregator auto-detect".
type Carrier struct {
	// Name is the display label for the carrier.
	Name string `json:"name"`
	// Code is the aggregator's numeric carrier identifier.
	Code int `json:"code"`
}

var (
	correiosPattern      = regexp.MustCompile(`^[A-Z]{2}\d{9}BR$`)
	loggiPattern         = regexp.MustCompile(`^[A-Z0-9]{8}$`)
	jadlogPattern        = regexp.MustCompile(`^\d{14}$`)
	totalExpressPattern  = regexp.MustCompile(`^[A-Z]{3}\d{11}$`)
	cainiaoPattern       = regexp.MustCompile(`^LP\d{14}`)
	yanwenPattern        = regexp.MustCompile(`^YT\d{16}$`)
	internationalPattern = regexp.MustCompile(`^[A-Z]{2}\d{9}[A-Z]{2}$`)
)

// DetectCarrier infers the carrier from the lexical shape of a
// tracking number. The result is a hint for the aggregator, used to
// avoid auto-detection failures; it is never a hard constraint.
// Every input yields a result: unmatched shapes fall back to Auto.
func DetectCarrier(trackingNumber string) Carrier {
	tracking := strings.ToUpper(strings.TrimSpace(trackingNumber))

	// Correios: 2 letters + 9 digits + BR, e.g. NM985773507BR.
	if correiosPattern.MatchString(tracking) {
		return Carrier{Name: "Correios", Code: 2151}
	}

	// Loggi: 8 alphanumerics, e.g. GBEFUWCT.
	if loggiPattern.MatchString(tracking) && !strings.HasSuffix(tracking, "BR") {
		return Carrier{Name: "Loggi", Code: 100457}
	}

	// Jadlog: 14 digits.
	if jadlogPattern.MatchString(tracking) {
		return Carrier{Name: "Jadlog", Code: 100013}
	}

	// Total Express: 3 letters + 11 digits.
	if totalExpressPattern.MatchString(tracking) {
		return Carrier{Name: "Total Express", Code: 190232}
	}

	// Cainiao / AliExpress consolidator.
	if cainiaoPattern.MatchString(tracking) || strings.HasPrefix(tracking, "CAINIAO") {
		return Carrier{Name: "Cainiao", Code: 190008}
	}

	// Yanwen: YT + 16 digits.
	if yanwenPattern.MatchString(tracking) {
		return Carrier{Name: "Yanwen", Code: 190012}
	}

	if strings.HasPrefix(tracking, "4PX") {
		return Carrier{Name: "4PX", Code: 190002}
	}

	// UPU S10 international format: 2 letters + 9 digits + country suffix.
	if internationalPattern.MatchString(tracking) && !strings.HasSuffix(tracking, "BR") {
		if strings.HasSuffix(tracking, "CN") {
			return Carrier{Name: "China Post", Code: 3011}
		}
		return Carrier{Name: "Internacional", Code: 0}
	}

	return Carrier{Name: "Auto", Code: 0}
}
