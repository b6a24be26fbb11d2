package common

const (
	OneHalf       = 1.0 / 2.0 // 0.5
	ArcRadius     = 0.30      // arc radius as a fraction of container width
	ArcAngleLimit = 179.99    // largest end angle handed to an SVG arc
	FullCircle    = 360.0     // degrees
	HalfCircle    = 180.0     // degrees
	QuarterCircle = 90.0      // degrees
	TitleY        = 0.11      // title baseline as a fraction of height
	NumericY      = OneHalf   // numeric readout center as a fraction of height
	SubtitleY     = 0.96      // subtitle baseline as a fraction of height
	Baseline      = 0.8       // share of a text line above its baseline
)
