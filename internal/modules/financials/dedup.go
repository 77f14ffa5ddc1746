package financials

import "strings"

// scoreTickerRow rates how complete a ticker row is. A company name is worth
// the most, a listed exchange less, with a small bonus for names longer than
// five characters. Maximum score is 17.
func scoreTickerRow(row TickerInfo) int {
	score := 0

	name := strings.TrimSpace(row.CompanyName)
	if name != "" {
		score += 10
	}
	if !row.ListedExchange.Empty() {
		score += 5
	}
	if len(name) > 5 {
		score += 2
	}

	return score
}

// dedupeTickers collapses duplicate ticker symbols to the highest-scoring
// candidate. Replacement requires a strictly greater score, so ties keep the
// first row seen. Rows with an empty normalized ticker are dropped. Output
// preserves the order in which symbols were first retained.
func dedupeTickers(rows []TickerInfo) []TickerInfo {
	result := make([]TickerInfo, 0, len(rows))
	index := make(map[string]int)
	best := make(map[string]int)

	for _, row := range rows {
		symbol := strings.ToUpper(strings.TrimSpace(row.Ticker))
		if symbol == "" {
			continue
		}
		row.Ticker = symbol

		score := scoreTickerRow(row)

		i, seen := index[symbol]
		if !seen {
			index[symbol] = len(result)
			best[symbol] = score
			result = append(result, row)
			continue
		}

		if score > best[symbol] {
			result[i] = row
			best[symbol] = score
		}
	}

	return result
}
