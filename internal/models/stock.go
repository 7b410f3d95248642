// Package models defines the core domain types for Stockscout
package models

import "time"

// Stock is a snapshot of market state for one symbol, assembled from
// the market data provider before analysis runs.
type Stock struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name,omitempty"`
	CurrentPrice  float64      `json:"current_price"`
	OpenPrice     float64      `json:"open_price"`
	PreviousClose float64      `json:"previous_close,omitempty"`
	HighPrice     float64      `json:"high_price"`
	LowPrice      float64      `json:"low_price"`
	Volume        int64        `json:"volume"`
	History       []Bar        `json:"history,omitempty"`
	Fundamentals  Fundamentals `json:"fundamentals,omitempty"`
	Sector        string       `json:"sector,omitempty"`
	Industry      string       `json:"industry,omitempty"`
	AsOf          time.Time    `json:"as_of"`
}

// PriceChange returns the absolute change from the previous close
func (s *Stock) PriceChange() float64 {
	if s.PreviousClose == 0 {
		return 0
	}
	return s.CurrentPrice - s.PreviousClose
}

// PriceChangePercent returns the percent change from the previous close
func (s *Stock) PriceChangePercent() float64 {
	if s.PreviousClose == 0 {
		return 0
	}
	return (s.CurrentPrice - s.PreviousClose) / s.PreviousClose * 100
}

// Bar is one OHLCV period. History slices are ordered oldest first.
type Bar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close,omitempty"`
	Volume   int64     `json:"volume"`
}

// Fundamentals holds the valuation metrics used by the fundamental analyzer
type Fundamentals struct {
	MarketCap      float64 `json:"market_cap,omitempty"`
	PERatio        float64 `json:"pe_ratio,omitempty"`
	ForwardPE      float64 `json:"forward_pe,omitempty"`
	PriceToBook    float64 `json:"price_to_book,omitempty"`
	DebtToEquity   float64 `json:"debt_to_equity,omitempty"`
	EPS            float64 `json:"eps,omitempty"`
	DividendYield  float64 `json:"dividend_yield,omitempty"`
	Beta           float64 `json:"beta,omitempty"`
	WeekHigh52     float64 `json:"week_high_52,omitempty"`
	WeekLow52      float64 `json:"week_low_52,omitempty"`
	ProfitMargin   float64 `json:"profit_margin,omitempty"`
	RevenueGrowth  float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth float64 `json:"earnings_growth,omitempty"`
}

// Closes extracts closing prices from history, oldest first
func (s *Stock) Closes() []float64 {
	closes := make([]float64, len(s.History))
	for i, bar := range s.History {
		closes[i] = bar.Close
	}
	return closes
}

// Volumes extracts volumes from history, oldest first
func (s *Stock) Volumes() []int64 {
	volumes := make([]int64, len(s.History))
	for i, bar := range s.History {
		volumes[i] = bar.Volume
	}
	return volumes
}
