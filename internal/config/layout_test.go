package config

import "testing"

func TestNormaliseLayoutSettingsDefaultsAndBounds(t *testing.T) {
	layout := NormaliseLayoutSettings(LayoutSettings{})
	if layout.ListWidth != LayoutListWidthDefault {
		t.Fatalf(
			"expected list width default %v, got %v",
			LayoutListWidthDefault,
			layout.ListWidth,
		)
	}
	if layout.DetailSplit != LayoutDetailSplitDefault {
		t.Fatalf(
			"expected detail split default %v, got %v",
			LayoutDetailSplitDefault,
			layout.DetailSplit,
		)
	}
	if layout.MainSplit != LayoutMainSplitVertical {
		t.Fatalf("expected main split vertical, got %v", layout.MainSplit)
	}
	if layout.PreviewHidden {
		t.Fatalf("expected preview visible by default")
	}
}

func TestNormaliseLayoutSettingsClampsValues(t *testing.T) {
	raw := LayoutSettings{
		ListWidth:     1.4,
		DetailSplit:   0.01,
		MainSplit:     "SIDEWAYS",
		PreviewHidden: true,
	}
	layout := NormaliseLayoutSettings(raw)
	if layout.ListWidth != LayoutListWidthMax {
		t.Fatalf(
			"expected list width clamped to %v, got %v",
			LayoutListWidthMax,
			layout.ListWidth,
		)
	}
	if layout.DetailSplit != LayoutDetailSplitMin {
		t.Fatalf(
			"expected detail split clamped to %v, got %v",
			LayoutDetailSplitMin,
			layout.DetailSplit,
		)
	}
	if layout.MainSplit != LayoutMainSplitVertical {
		t.Fatalf("expected main split fallback to vertical, got %v", layout.MainSplit)
	}
	if !layout.PreviewHidden {
		t.Fatalf("expected preview hidden flag to survive normalisation")
	}
}

func TestNormaliseMainSplitHonoursExplicitHorizontal(t *testing.T) {
	split := normaliseMainSplit(LayoutMainSplitHorizontal, LayoutMainSplitVertical)
	if split != LayoutMainSplitHorizontal {
		t.Fatalf("expected explicit horizontal to be preserved, got %v", split)
	}
}
