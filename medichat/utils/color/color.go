package color

import (
	"github.com/fatih/color"
)

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	infoColor      = color.New(color.FgGreen)
	warningColor   = color.New(color.FgYellow, color.Bold)
	errorColor     = color.New(color.FgRed, color.Bold)
	assistantColor = color.New(color.FgHiYellow)
	reasoningColor = color.New(color.FgHiBlack)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorAssistant(s string) string {
	return assistantColor.Sprint(s)
}

func ColorReasoning(s string) string {
	return reasoningColor.Sprint(s)
}
