package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// ZeroTicker is a synthetic series of constant zeroes over the equity
// trading calendar. It represents a riskless placeholder holding without
// needing its own data source.
const ZeroTicker = "ZEROX"

type Ticker struct {
	Symbol   string  `json:"symbol"`
	Leverage float64 `json:"leverage"`
	Display  string  `json:"display"`
}

// ParseTicker resolves a raw ticker query ("SYM" or "SYM?L=<leverage>")
// into a concrete symbol, leverage multiplier and display name. Simulated
// symbols are remapped to the real series they track.
func ParseTicker(raw string) Ticker {
	symbol, query, _ := strings.Cut(raw, "?")

	leverage := 1.0
	if params, err := url.ParseQuery(query); err == nil {
		if l, err := strconv.ParseFloat(params.Get("L"), 64); err == nil && l != 0 {
			leverage = l
		}
	}

	if mapped, ok := simTickerAliases[symbol]; ok {
		symbol = mapped
	}

	display := symbol
	if leverage != 1 {
		display += "×" + strconv.FormatFloat(leverage, 'f', -1, 64)
	}

	return Ticker{
		Symbol:   symbol,
		Leverage: leverage,
		Display:  display,
	}
}

// IsEconomicSeries reports whether the symbol is served by the
// economic-data feed rather than the equity quote feed.
func IsEconomicSeries(symbol string) bool {
	switch symbol {
	case "DTB3", "DFF", "CPIAUCNS":
		return true
	}
	return false
}

// simTickerAliases maps simulated/backfilled tickers to the tradable or
// economic series they track.
var simTickerAliases = map[string]string{
	"TBILL":   "DTB3",
	"CASHX":   "DTB3",
	"EFFRX":   "DFF",
	"SPYSIM":  "SPY",
	"SPYTR":   "SPY",
	"KMLMSIM": "KMLM",
	"KMLMX":   "KMLM",
	"GLDSIM":  "GLD",
	"GOLDX":   "GLD",
	"SVIXSIM": "SVIX",
	"SVIXX":   "SVIX",
	"UVIXSIM": "UVIX",
	"ZVOLSIM": "ZVOL",
	"ZIVBX":   "ZVOL",
	"TLTSIM":  "TLT",
	"TLTTR":   "TLT",
	"ZROZSIM": "ZROZ",
	"ZROZX":   "ZROZ",
	"VXUSSIM": "VGTSX",
	"VXUSX":   "VGTSX",
	"VTISIM":  "VTSMX",
	"VTITR":   "VTSMX",
	"VTSIM":   "VT",
	"DBMFSIM": "DBMF",
	"DBMFX":   "DBMF",
	"VIXSIM":  "^VIX",
	"VOLIX":   "^VIX",
	"GSGSIM":  "GSG",
	"GSGTR":   "GSG",
	"IEFSIM":  "IEF",
	"IEFTR":   "IEF",
	"IEISIM":  "IEI",
	"IEITR":   "IEI",
	"SHYSIM":  "SHY",
	"SHYTR":   "SHY",
	"BTCSIM":  "IBIT",
	"BTCTR":   "IBIT",
	"ETHSIM":  "ETHA",
	"ETHTR":   "ETHA",
	"XLBSIM":  "XLB",
	"XLBTR":   "XLB",
	"XLCSIM":  "XLC",
	"XLCTR":   "XLC",
	"XLESIM":  "XLE",
	"XLETR":   "XLE",
	"XLFSIM":  "XLF",
	"XLFTR":   "XLF",
	"XLISIM":  "XLI",
	"XLITR":   "XLI",
	"XLKSIM":  "XLK",
	"XLKTR":   "XLK",
	"XLPSIM":  "XLP",
	"XLPTR":   "XLP",
	"XLUSIM":  "XLU",
	"XLUTR":   "XLU",
	"XLVSIM":  "XLV",
	"XLVTR":   "XLV",
	"XLYSIM":  "XLY",
	"XLYTR":   "XLY",
	"QQQSIM":  "QQQ",
	"QQQTR":   "QQQ",
	"CAOSSIM": "CAOS",
	"FNGUSIM": "FNGU",
	"MCISIM":  "MCI",

	"INFLATION": "CPIAUCNS",
}
