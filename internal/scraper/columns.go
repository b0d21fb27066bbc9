package scraper

import (
	"regexp"
	"strings"
	"unicode"
)

// NoColumn marks a column that could not be identified
const NoColumn = -1

// Columns holds the resolved indices of a results-style table
type Columns struct {
	Position int
	Name     int
	Money    int
}

var (
	positionKeywords = []string{"pos", "pos.", "position", "place", "fin", "finish"}
	nameKeywords     = []string{"player", "name", "golfer", "athlete"}
	moneyKeywords    = []string{"money", "prize", "earnings", "amount", "prize money", "winnings", "purse"}

	tiedPosition = regexp.MustCompile(`^[A-Za-z]?\d+$`)
	longDigitRun = regexp.MustCompile(`\d{4,}`)
)

// ResolveColumns identifies the position, name and money columns of a table from its
// header row, falling back to the data rows in sample when the header is unhelpful.
//
// Header cells are matched exactly against a fixed vocabulary first, then by whole-word
// containment. When neither position nor name resolve, a table whose first column looks
// like positions and whose last column holds currency is read as position, name, ...,
// money. A still-missing money column is taken from MoneyColumnFromSample.
func ResolveColumns(header []string, sample [][]string) Columns {
	cols := Columns{Position: NoColumn, Name: NoColumn, Money: NoColumn}

	cols.Name = findColumn(header, nameKeywords)
	cols.Position = findColumn(header, positionKeywords, cols.Name)
	cols.Money = findColumn(header, moneyKeywords, cols.Name, cols.Position)

	if cols.Position == NoColumn && cols.Name == NoColumn {
		if guess, ok := positionalColumns(sample); ok {
			return guess
		}
	}

	if cols.Money == NoColumn {
		money := MoneyColumnFromSample(sample)
		if money != cols.Name && money != cols.Position {
			cols.Money = money
		}
	}
	return cols
}

// HasHeaderKeywords reports whether a header row names a player or money column
func HasHeaderKeywords(header []string) bool {
	return findColumn(header, nameKeywords) != NoColumn || findColumn(header, moneyKeywords) != NoColumn
}

func findColumn(header []string, keywords []string, exclude ...int) int {
	skip := func(i int) bool {
		for _, e := range exclude {
			if e == i {
				return true
			}
		}
		return false
	}

	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for i, h := range normalized {
		if skip(i) {
			continue
		}
		for _, k := range keywords {
			if h == k {
				return i
			}
		}
	}

	for i, h := range normalized {
		if skip(i) {
			continue
		}
		padded := " " + strings.Join(words(h), " ") + " "
		for _, k := range keywords {
			if strings.Contains(padded, " "+strings.Join(words(k), " ")+" ") {
				return i
			}
		}
	}
	return NoColumn
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// positionalColumns applies the "Pos | Player | ... | Money" layout guess to the first
// sample rows that have at least three cells.
func positionalColumns(sample [][]string) (Columns, bool) {
	checked := 0
	for _, row := range sample {
		if len(row) < 3 {
			continue
		}
		if tiedPosition.MatchString(row[0]) && hasCurrency(row[len(row)-1]) {
			return Columns{Position: 0, Name: 1, Money: len(row) - 1}, true
		}
		checked++
		if checked == 3 {
			break
		}
	}
	return Columns{}, false
}

// MoneyColumnFromSample picks the column that most often holds a currency amount.
// Column 0 is never chosen since it holds positions. Currency symbols outrank bare
// digit runs of four or more; ties go to the leftmost column.
func MoneyColumnFromSample(sample [][]string) int {
	width := 0
	for _, row := range sample {
		if len(row) > width {
			width = len(row)
		}
	}

	best, bestCurrency, bestDigits := NoColumn, 0, 0
	for col := 1; col < width; col++ {
		currency, digits := 0, 0
		for _, row := range sample {
			if col >= len(row) {
				continue
			}
			cell := row[col]
			if hasCurrency(cell) {
				currency++
			} else if longDigitRun.MatchString(strings.ReplaceAll(cell, ",", "")) {
				digits++
			}
		}
		if currency > bestCurrency || (bestCurrency == 0 && currency == 0 && digits > bestDigits) {
			best, bestCurrency, bestDigits = col, currency, digits
		}
	}
	return best
}

func hasCurrency(s string) bool {
	return strings.ContainsAny(s, "$€£")
}

func sampleHasCurrency(rows [][]string) bool {
	for _, row := range rows {
		for _, cell := range row {
			if hasCurrency(cell) {
				return true
			}
		}
	}
	return false
}

// isHeaderToken reports whether a cell repeats a column title rather than a golfer name
func isHeaderToken(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range nameKeywords {
		if s == k {
			return true
		}
	}
	return false
}
