package models

import "strings"

// Token is one entry of the upstream catalog (/coins/list).
type Token struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type TokenList []Token

// FilterBySymbol returns every token whose ticker matches symbol,
// compared lowercase. Symbol collisions are common in real catalogs.
func (l TokenList) FilterBySymbol(symbol string) TokenList {
	want := strings.ToLower(strings.TrimSpace(symbol))

	var matched TokenList
	for _, t := range l {
		if strings.ToLower(t.Symbol) == want {
			matched = append(matched, t)
		}
	}
	return matched
}

// TokenImage holds the per-size icon URLs from /coins/{id}.
type TokenImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// TokenDetails is the subset of /coins/{id} the service needs.
// MarketCapRank == 0 means the token is unranked.
type TokenDetails struct {
	ID            string     `json:"id"`
	Image         TokenImage `json:"image"`
	MarketCapRank int        `json:"market_cap_rank"`
}

const (
	SizeXS = "xs"
	SizeSM = "sm"
	SizeLG = "lg"
)

func ValidSize(size string) bool {
	switch size {
	case SizeXS, SizeSM, SizeLG:
		return true
	}
	return false
}

// URL maps a request size onto the matching icon URL.
func (i TokenImage) URL(size string) string {
	switch size {
	case SizeXS:
		return i.Thumb
	case SizeSM:
		return i.Small
	case SizeLG:
		return i.Large
	}
	return ""
}
