package config

import "strings"

type LayoutMainSplit string

const (
	LayoutMainSplitVertical   LayoutMainSplit = "vertical"
	LayoutMainSplitHorizontal LayoutMainSplit = "horizontal"
)

type LayoutSettings struct {
	ListWidth      float64         `json:"list_width"      toml:"list_width"`
	DetailSplit    float64         `json:"detail_split"    toml:"detail_split"`
	MainSplit      LayoutMainSplit `json:"main_split"      toml:"main_split"`
	PreviewHidden  bool            `json:"preview_hidden"  toml:"preview_hidden"`
}

const (
	LayoutListWidthDefault   = 0.34
	LayoutListWidthMin       = 0.2
	LayoutListWidthMax       = 0.6
	LayoutDetailSplitDefault = 0.38
	LayoutDetailSplitMin     = 0.2
	LayoutDetailSplitMax     = 0.7
)

func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{
		ListWidth:      LayoutListWidthDefault,
		DetailSplit:    LayoutDetailSplitDefault,
		MainSplit:      LayoutMainSplitVertical,
		PreviewHidden:  false,
	}
}

func NormaliseLayoutSettings(in LayoutSettings) LayoutSettings {
	layout := DefaultLayoutSettings()
	layout.ListWidth = clampFloat(
		in.ListWidth,
		LayoutListWidthMin,
		LayoutListWidthMax,
		LayoutListWidthDefault,
	)
	layout.DetailSplit = clampFloat(
		in.DetailSplit,
		LayoutDetailSplitMin,
		LayoutDetailSplitMax,
		LayoutDetailSplitDefault,
	)
	layout.MainSplit = normaliseMainSplit(in.MainSplit, layout.MainSplit)
	layout.PreviewHidden = in.PreviewHidden
	return layout
}

func normaliseMainSplit(in LayoutMainSplit, def LayoutMainSplit) LayoutMainSplit {
	switch strings.ToLower(strings.TrimSpace(string(in))) {
	case string(LayoutMainSplitHorizontal):
		return LayoutMainSplitHorizontal
	case string(LayoutMainSplitVertical):
		return LayoutMainSplitVertical
	default:
		return def
	}
}

func clampFloat[T ~float64](value, min, max, fallback T) T {
	if value == 0 {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
