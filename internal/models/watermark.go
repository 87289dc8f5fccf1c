package models

// WatermarkOptions is the wire form of a watermark request. Pointer fields
// distinguish "unset" from zero so server defaults can apply.
type WatermarkOptions struct {
	Text         string   `json:"text,omitempty" form:"text"`
	ImageURL     string   `json:"image_url,omitempty" form:"image_url"`
	Font         string   `json:"font,omitempty" form:"font"`
	FontSize     float64  `json:"font_size,omitempty" form:"font_size" binding:"omitempty,gt=0"`
	Color        string   `json:"color,omitempty" form:"color"`
	Opacity      *float64 `json:"opacity,omitempty" form:"opacity" binding:"omitempty,min=0,max=1"`
	OpacityLevel *int     `json:"opacity_level,omitempty" form:"opacity_level" binding:"omitempty,min=0,max=10"`
	Rotation     *float64 `json:"rotation,omitempty" form:"rotation"`
	XSpacing     *int     `json:"x_spacing,omitempty" form:"x_spacing" binding:"omitempty,min=0"`
	YSpacing     *int     `json:"y_spacing,omitempty" form:"y_spacing" binding:"omitempty,min=0"`
	FullCoverage bool     `json:"full_coverage,omitempty" form:"full_coverage"`
	KeepLegacy   *bool    `json:"keep_legacy,omitempty" form:"keep_legacy"`
	ColorKey     string   `json:"color_key,omitempty" form:"color_key" binding:"omitempty,oneof=white black none"`
	KeyOffset    *int     `json:"key_offset,omitempty" form:"key_offset" binding:"omitempty,min=0,max=255"`
}
