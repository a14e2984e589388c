// Package ui centralizes terminal color helpers for CLI output.
package ui

import "github.com/fatih/color"

var (
	HeaderColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	InfoColor    = color.New(color.FgCyan).SprintFunc()
	WarningColor = color.New(color.FgYellow).SprintFunc()
	ErrorColor   = color.New(color.FgRed).SprintFunc()
	DetailColor  = color.New(color.FgHiBlack).SprintFunc() // For less prominent details like run parameters
)
