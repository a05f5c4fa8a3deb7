package calendar

// BrazilianHolidays lists the national public holidays for 2024-2026.
// Used as the default set when no HOLIDAYS_FILE is configured; the
// table needs a yearly refresh as new holiday decrees land.
var BrazilianHolidays = []string{
	// 2024
	"2024-01-01", "2024-02-12", "2024-02-13", "2024-03-29", "2024-04-21",
	"2024-05-01", "2024-05-30", "2024-09-07", "2024-10-12", "2024-11-02",
	"2024-11-15", "2024-11-20", "2024-12-25",
	// 2025
	"2025-01-01", "2025-03-03", "2025-03-04", "2025-04-18", "2025-04-21",
	"2025-05-01", "2025-06-19", "2025-09-07", "2025-10-12", "2025-11-02",
	"2025-11-15", "2025-11-20", "2025-12-25",
	// 2026
	"2026-01-01", "2026-02-16", "2026-02-17", "2026-04-03", "2026-04-21",
	"2026-05-01", "2026-06-04", "2026-09-07", "2026-10-12", "2026-11-02",
	"2026-11-15", "2026-11-20", "2026-12-25",
}
