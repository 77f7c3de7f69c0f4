package page

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/vanderheijden86/treeview/pkg/host"
)

func render(t *testing.T, p Page) (string, *goquery.Document) {
	t.Helper()
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return buf.String(), doc
}

func TestWrite_Widgets(t *testing.T) {
	out, doc := render(t, Page{
		Title:    `Tree <&>`,
		FontSize: 18,
		Widgets: []Widget{
			{ID: "nav", Mode: host.ShadowOpen, Content: `<style>ul{}</style><ul><li>a</li></ul>`},
			{Content: `<ul><li>b</li><li>c</li></ul>`},
		},
	})

	if got := doc.Find("title").Text(); got != "Tree <&>" {
		t.Errorf("title = %q", got)
	}
	if !strings.Contains(out, "<title>Tree &lt;&amp;&gt;</title>") {
		t.Error("title should be escaped")
	}
	if style, _ := doc.Find("body").Attr("style"); style != "font-size: 18px" {
		t.Errorf("body style = %q", style)
	}

	hosts := doc.Find("[data-treeview]")
	if hosts.Length() != 2 {
		t.Fatalf("hosts = %d", hosts.Length())
	}
	if id, _ := hosts.Eq(0).Attr("id"); id != "nav" {
		t.Errorf("first id = %q", id)
	}
	if id, _ := hosts.Eq(1).Attr("id"); id != "treeview-2" {
		t.Errorf("second id = %q", id)
	}
	if mode, _ := hosts.Eq(0).Find("template").Attr("shadowrootmode"); mode != "open" {
		t.Errorf("first mode = %q", mode)
	}
	if mode, _ := hosts.Eq(1).Find("template").Attr("shadowrootmode"); mode != "closed" {
		t.Errorf("default mode = %q", mode)
	}
	if !strings.Contains(out, `<template shadowrootmode="closed"><ul><li>b</li><li>c</li></ul></template>`) {
		t.Error("widget content should be emitted verbatim")
	}
}

func TestWrite_Script(t *testing.T) {
	out, doc := render(t, Page{})
	if doc.Find("script").Length() != 1 {
		t.Fatal("expected one script")
	}
	if !strings.Contains(out, Script()) {
		t.Error("embedded script missing")
	}
	for _, want := range []string{"previousElementSibling", "preventDefault", "data-treeview"} {
		if !strings.Contains(Script(), want) {
			t.Errorf("script lacks %q", want)
		}
	}
	if _, ok := doc.Find("body").Attr("style"); ok {
		t.Error("zero font size should leave the body unstyled")
	}
}
