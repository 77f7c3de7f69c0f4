package treeview

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/icon"
	"github.com/vanderheijden86/treeview/pkg/metrics"
	"github.com/vanderheijden86/treeview/pkg/stylesheet"
	"github.com/vanderheijden86/treeview/pkg/units"
)

// instances numbers widgets so each gets its own selection group.
var instances atomic.Uint64

func nextGroupName() string {
	return fmt.Sprintf("treeview-%d", instances.Add(1))
}

// ResolveOptions merges opts with defaults and turns the font size into one
// absolute length:
//
//   - a non-negative size with an absolute unit is used as is
//   - any other size is applied to a temporary probe inside mount and the
//     computed size is read back; the probe is always removed
//   - no size at all takes the mount's computed font size
//
// Sizes the host cannot resolve fall back to whatever it computes, and
// finally to units.DefaultFontSize.
func ResolveOptions(mount host.Element, opts Options) Resolved {
	defer metrics.Timer(metrics.OptionsResolve)()

	r := Resolved{
		AddonCSS:         opts.AddonCSS,
		FolderImageColor: opts.FolderImageColor,
		FolderImageData:  opts.FolderImageData,
		GroupName:        opts.GroupName,
		HighlightColor:   opts.HighlightColor,
		IconFormat:       strings.ToLower(opts.IconFormat),
		CacheFragments:   opts.CacheFragments,
		ShadowMode:       opts.ShadowMode,
	}
	if r.FolderImageColor == "" {
		r.FolderImageColor = icon.DefaultColor
	}
	if r.GroupName == "" {
		r.GroupName = nextGroupName()
	}
	if r.HighlightColor == "" {
		r.HighlightColor = stylesheet.DefaultHighlightColor
	}
	if r.IconFormat != IconSVG {
		r.IconFormat = IconPNG
	}
	if r.ShadowMode == "" {
		r.ShadowMode = host.ShadowClosed
	}

	r.FontSize = resolveFontSize(mount, opts.FontSize)
	r.FontPx, _ = r.FontSize.Pixels()
	debug.Log("treeview: font size %q resolved to %s", opts.FontSize, r.FontSize)
	return r
}

func resolveFontSize(mount host.Element, raw string) units.Length {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		// Negative sizes are invalid; the probe drops them like any other
		// invalid declaration.
		if l, err := units.Parse(raw); err == nil && l.IsAbsolute() && l.Value >= 0 {
			return l
		}
		return absolute(probeFontSize(mount, raw))
	}
	return absolute(mount.ComputedStyle("font-size"))
}

// probeFontSize applies value to a transient child of mount and returns the
// computed font size. The probe is removed even if styling panics.
func probeFontSize(mount host.Element, value string) (computed string) {
	doc := mount.OwnerDocument()
	if doc == nil {
		return mount.ComputedStyle("font-size")
	}
	probe := doc.CreateElement("span")
	if err := mount.AppendChild(probe); err != nil {
		debug.Log("treeview: attach font-size probe: %v", err)
		return mount.ComputedStyle("font-size")
	}
	defer func() {
		if err := mount.RemoveChild(probe); err != nil {
			debug.Log("treeview: remove font-size probe: %v", err)
		}
	}()

	inherited := mount.ComputedStyle("font-size")
	probe.SetStyle("font-size", value)
	computed = probe.ComputedStyle("font-size")
	debug.LogIf(computed == inherited, "treeview: font size %q did not apply, inheriting %s", value, computed)
	return computed
}

// absolute parses a computed font size, falling back to the default size for
// anything that is not an absolute length.
func absolute(computed string) units.Length {
	l, err := units.Parse(computed)
	if err != nil || !l.IsAbsolute() {
		debug.Log("treeview: computed font size %q unusable, using default", computed)
		return units.Px(units.DefaultFontSize)
	}
	return l
}
