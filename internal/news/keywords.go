package news

import "strings"

// sectorKeywords maps a sector to market themes that move its stocks
var sectorKeywords = map[string][]string{
	"energy":                 {"oil prices", "natural gas", "OPEC", "crude oil", "energy crisis"},
	"technology":             {"artificial intelligence", "semiconductor shortage", "tech regulation", "chip production"},
	"healthcare":             {"FDA approval", "drug pricing", "clinical trial", "healthcare policy"},
	"financial":              {"Federal Reserve", "interest rates", "inflation", "banking regulation"},
	"financial services":     {"Federal Reserve", "interest rates", "inflation", "banking regulation"},
	"consumer cyclical":      {"consumer spending", "retail sales", "supply chain"},
	"consumer defensive":     {"consumer spending", "food prices", "retail sales"},
	"industrials":            {"manufacturing", "supply chain", "infrastructure spending"},
	"utilities":              {"energy prices", "power grid", "renewable energy"},
	"real estate":            {"housing market", "mortgage rates", "commercial real estate"},
	"basic materials":        {"commodity prices", "mining", "raw materials"},
	"communication services": {"advertising spending", "streaming", "telecom regulation"},
}

// RelatedMarketKeywords returns broad market keywords for a sector, or
// nil when the sector has no mapping.
func RelatedMarketKeywords(sector string) []string {
	return sectorKeywords[strings.ToLower(strings.TrimSpace(sector))]
}
