// Package financials provides the financial-statement domain: record models,
// the paginated remote-store repository, the in-process TTL cache and the
// service tying them together.
package financials

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FinancialRecord is one row of the financials table. The statement payloads
// are opaque JSON blobs passed through to the frontend untouched.
type FinancialRecord struct {
	Ticker          string          `json:"ticker"`
	Year            int             `json:"year"`
	Quarter         string          `json:"quarter"`
	IncomeStatement json.RawMessage `json:"income_statement,omitempty"`
	BalanceSheet    json.RawMessage `json:"balance_sheet,omitempty"`
	CashFlow        json.RawMessage `json:"cash_flow,omitempty"`
	CompanyName     string          `json:"company_name"`
	ListedExchange  ExchangeList    `json:"listed_exchange"`
}

// TickerInfo is the restricted projection served by the ticker list endpoint.
type TickerInfo struct {
	Ticker         string       `json:"ticker"`
	CompanyName    string       `json:"company_name"`
	ListedExchange ExchangeList `json:"listed_exchange"`
}

// ExchangeList holds the listed_exchange column, which the table stores
// inconsistently as either a JSON string or an array of strings.
type ExchangeList []string

// UnmarshalJSON accepts null, a single string or an array of strings.
func (e *ExchangeList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*e = nil
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s == "" {
			*e = nil
			return nil
		}
		*e = ExchangeList{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*e = ExchangeList(list)
	return nil
}

// MarshalJSON emits the most natural form: an empty value as "", a single
// exchange as a plain string, multiple exchanges as an array.
func (e ExchangeList) MarshalJSON() ([]byte, error) {
	switch len(e) {
	case 0:
		return json.Marshal("")
	case 1:
		return json.Marshal(e[0])
	default:
		return json.Marshal([]string(e))
	}
}

// Empty reports whether the value carries no usable exchange name.
func (e ExchangeList) Empty() bool {
	for _, v := range e {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
