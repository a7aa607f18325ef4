package main

import (
	"fmt"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// noColor honours https://no-color.org
var noColor = os.Getenv("NO_COLOR") != ""

func paint(color, symbol, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if noColor {
		fmt.Printf("%s %s\n", symbol, msg)
		return
	}
	fmt.Printf("%s%s %s%s\n", color, symbol, msg, colorReset)
}

func PrintInfo(format string, a ...interface{})    { paint(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...interface{}) { paint(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...interface{}) { paint(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...interface{})   { paint(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Println()
	paint(colorYellow, "===", "%s ===", title)
}
