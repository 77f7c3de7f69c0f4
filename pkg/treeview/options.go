package treeview

import (
	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/units"
)

// Icon formats.
const (
	IconPNG = "png"
	IconSVG = "svg"
)

// Options is the caller-supplied configuration. Every field is optional.
type Options struct {
	// FontSize is a CSS length. Values without an absolute unit are resolved
	// against the mount element; "" inherits the mount's font size.
	FontSize string `yaml:"font_size,omitempty" json:"fontSize,omitempty"`
	// AddonCSS is appended verbatim after the generated style block.
	AddonCSS string `yaml:"addon_css,omitempty" json:"addonCssText,omitempty"`
	// FolderImageColor fills the generated disclosure icon.
	FolderImageColor string `yaml:"folder_image_color,omitempty" json:"folderImageColor,omitempty"`
	// FolderImageData replaces the generated icon.
	FolderImageData string `yaml:"folder_image_data,omitempty" json:"folderImageData,omitempty"`
	// GroupName names the selection group. Defaults to a per-instance name.
	GroupName string `yaml:"group_name,omitempty" json:"groupName,omitempty"`
	// HighlightColor is the background of hovered and selected labels.
	HighlightColor string `yaml:"highlight_color,omitempty" json:"highlightColor,omitempty"`
	// IconFormat selects the rasterizer: IconPNG (default) or IconSVG.
	IconFormat string `yaml:"icon_format,omitempty" json:"iconFormat,omitempty"`
	// CacheFragments memoizes the markup of unchanged root nodes across
	// resets.
	CacheFragments bool `yaml:"cache_fragments,omitempty" json:"cacheFragments,omitempty"`
	// ShadowMode defaults to host.ShadowClosed.
	ShadowMode host.ShadowMode `yaml:"shadow_mode,omitempty" json:"shadowMode,omitempty"`
}

// Resolved holds the concrete values a widget renders with. It never changes
// after construction.
type Resolved struct {
	FontSize         units.Length
	FontPx           float64
	AddonCSS         string
	FolderImageColor string
	FolderImageData  string
	GroupName        string
	HighlightColor   string
	IconFormat       string
	CacheFragments   bool
	ShadowMode       host.ShadowMode
}
