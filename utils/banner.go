package utils

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/jedib0t/go-pretty/v6/text"
)

func DrawBanner() {
	banner := figure.NewFigure("cost-advisor", "", true)
	banner.Print()
	fmt.Println(text.FgHiBlue.Sprint(" cloud cost & usage check runner"))
	fmt.Println()
}
