package treeview

import (
	"strings"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/host"
)

// DeselectListener lets a click on the text of the selected node clear the
// selection, which native single-choice groups cannot do on their own.
//
// It only acts when the click lands on a <span> inside a <label> whose
// preceding sibling is a checked radio. The radio is unchecked and the
// default action cancelled, otherwise the label would check it again. Every
// other click is left to native semantics.
func DeselectListener(ev host.Event) {
	target := ev.Target()
	if target == nil || !strings.EqualFold(target.TagName(), "span") {
		return
	}
	label := target.Parent()
	if label == nil || !strings.EqualFold(label.TagName(), "label") {
		return
	}
	radio := target.PreviousElementSibling()
	if radio == nil || !isRadio(radio) || !radio.Checked() {
		return
	}
	radio.SetChecked(false)
	ev.PreventDefault()
	id, _ := radio.Attr("data-id")
	debug.Log("treeview: deselected node %q", id)
}

func isRadio(el host.Element) bool {
	if !strings.EqualFold(el.TagName(), "input") {
		return false
	}
	typ, _ := el.Attr("type")
	return strings.EqualFold(typ, "radio")
}
