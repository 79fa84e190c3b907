// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/jsonc"
)

// Theme defines the color palette for the dashboard TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status line.
	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color

	// Role badges in the admin panel.
	AdminBadge  lipgloss.Color
	MemberBadge lipgloss.Color

	// Markdown rendering in the task detail modal.
	CodeText       lipgloss.Color
	CodeBackground lipgloss.Color
	LinkForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:   lipgloss.Color("196"),
	SuccessText: lipgloss.Color("114"),

	AdminBadge:  lipgloss.Color("208"),
	MemberBadge: lipgloss.Color("75"),

	CodeText:       lipgloss.Color("252"),
	CodeBackground: lipgloss.Color("237"),
	LinkForeground: lipgloss.Color("75"),
}

// themeFile is the wire format of a theme override file. Every field is
// optional; unset fields keep the built-in value. The file is JSONC so
// hand-edited themes can carry comments.
type themeFile struct {
	NormalText         string `json:"normal_text"`
	FaintText          string `json:"faint_text"`
	SelectedBackground string `json:"selected_background"`
	SelectedForeground string `json:"selected_foreground"`
	HeaderForeground   string `json:"header_foreground"`
	BorderColor        string `json:"border_color"`
	HelpText           string `json:"help_text"`
	ErrorText          string `json:"error_text"`
	SuccessText        string `json:"success_text"`
	AdminBadge         string `json:"admin_badge"`
	MemberBadge        string `json:"member_badge"`
	CodeText           string `json:"code_text"`
	CodeBackground     string `json:"code_background"`
	LinkForeground     string `json:"link_foreground"`
}

// LoadTheme reads a JSONC theme file and returns DefaultTheme with the
// file's colors applied on top.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file %s: %w", path, err)
	}

	var file themeFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return Theme{}, fmt.Errorf("parsing theme file %s: %w", path, err)
	}

	theme := DefaultTheme
	applyColor(&theme.NormalText, file.NormalText)
	applyColor(&theme.FaintText, file.FaintText)
	applyColor(&theme.SelectedBackground, file.SelectedBackground)
	applyColor(&theme.SelectedForeground, file.SelectedForeground)
	applyColor(&theme.HeaderForeground, file.HeaderForeground)
	applyColor(&theme.BorderColor, file.BorderColor)
	applyColor(&theme.HelpText, file.HelpText)
	applyColor(&theme.ErrorText, file.ErrorText)
	applyColor(&theme.SuccessText, file.SuccessText)
	applyColor(&theme.AdminBadge, file.AdminBadge)
	applyColor(&theme.MemberBadge, file.MemberBadge)
	applyColor(&theme.CodeText, file.CodeText)
	applyColor(&theme.CodeBackground, file.CodeBackground)
	applyColor(&theme.LinkForeground, file.LinkForeground)
	return theme, nil
}

func applyColor(target *lipgloss.Color, value string) {
	if value != "" {
		*target = lipgloss.Color(value)
	}
}
