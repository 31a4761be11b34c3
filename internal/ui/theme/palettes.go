package theme

func init() {
	// tokyonight registers first and is the default.
	RegisterTheme("tokyonight", Palette{
		PrimaryColor:             color("#82aaff", "#2e7de9"),
		SecondaryColor:           color("#c099ff", "#9854f1"),
		AccentColor:              color("#ff966c", "#b15c00"),
		ErrorColor:               color("#ff757f", "#f52a65"),
		SuccessColor:             color("#c3e88d", "#587539"),
		TextColor:                color("#c8d3f5", "#3760bf"),
		TextMutedColor:           color("#636da6", "#848cb5"),
		BackgroundSecondaryColor: color("#2f334d", "#c8c9ce"),
		BorderNormalColor:        color("#3b4261", "#a8aecb"),
		BorderFocusedColor:       color("#82aaff", "#2e7de9"),
		BorderDimColor:           color("#292e42", "#c8c9ce"),
	})
	RegisterTheme("catppuccin", Palette{
		PrimaryColor:             color("#89b4fa", "#1e66f5"),
		SecondaryColor:           color("#cba6f7", "#8839ef"),
		AccentColor:              color("#fab387", "#fe640b"),
		ErrorColor:               color("#f38ba8", "#d20f39"),
		SuccessColor:             color("#a6e3a1", "#40a02b"),
		TextColor:                color("#cdd6f4", "#4c4f69"),
		TextMutedColor:           color("#6c7086", "#9ca0b0"),
		BackgroundSecondaryColor: color("#313244", "#e6e9ef"),
		BorderNormalColor:        color("#6c7086", "#9ca0b0"),
		BorderFocusedColor:       color("#89b4fa", "#1e66f5"),
		BorderDimColor:           color("#45475a", "#ccd0da"),
	})
	RegisterTheme("gruvbox", Palette{
		PrimaryColor:             color("#83a598", "#076678"),
		SecondaryColor:           color("#d3869b", "#8f3f71"),
		AccentColor:              color("#fabd2f", "#b57614"),
		ErrorColor:               color("#fb4934", "#9d0006"),
		SuccessColor:             color("#b8bb26", "#79740e"),
		TextColor:                color("#ebdbb2", "#3c3836"),
		TextMutedColor:           color("#a89984", "#7c6f64"),
		BackgroundSecondaryColor: color("#504945", "#ebdbb2"),
		BorderNormalColor:        color("#504945", "#bdae93"),
		BorderFocusedColor:       color("#83a598", "#076678"),
		BorderDimColor:           color("#3c3836", "#d5c4a1"),
	})
}
