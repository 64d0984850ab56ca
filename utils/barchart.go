package utils

import (
	"fmt"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// ProviderSavings is one bar of the savings chart.
type ProviderSavings struct {
	Provider string
	Savings  float64
}

// DrawSavingsChart displays estimated savings per provider.
func DrawSavingsChart(savings []ProviderSavings) {
	if len(savings) == 0 {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📉 ESTIMATED SAVINGS BY PROVIDER"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	bc := barchart.New(100, 16)
	indexedColors := assignRankedColors(savings)

	for idx, entry := range savings {
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%s: %.2f USD", entry.Provider, entry.Savings),
			Values: []barchart.BarValue{
				{
					Value: entry.Savings,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(indexedColors[idx])),
				},
			},
		})
	}

	fmt.Println()
	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View())))
}

func assignRankedColors(savings []ProviderSavings) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	type savingsWithIndex struct {
		index int
		value float64
	}

	toSort := make([]savingsWithIndex, len(savings))
	for i, entry := range savings {
		toSort[i] = savingsWithIndex{index: i, value: entry.Savings}
	}

	sort.Slice(toSort, func(i, j int) bool {
		return toSort[i].value > toSort[j].value
	})

	resultColors := make([]string, len(savings))
	for rank, sorted := range toSort {
		if rank < len(palette) {
			resultColors[sorted.index] = palette[rank]
		} else {
			resultColors[sorted.index] = palette[len(palette)-1]
		}
	}

	return resultColors
}
