package views

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"yi_connect_echo/internal/navigation"
)

// BottomNav renders the mobile bottom navigation with its submenu panel and overflow sheet.
// Until the state is hydrated only an empty placeholder is rendered.
func BottomNav(v navigation.View, path string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		if !v.Hydrated {
			h.raw(`<nav id="bottom-nav" class="bottom-nav bottom-nav--placeholder" aria-busy="true"></nav>`)
			return h.err
		}

		h.rawf(`<nav id="bottom-nav" class="bottom-nav" data-mode="%s" hx-target="#bottom-nav" hx-swap="outerHTML" hx-include="#nav-path">`, v.Mode)
		h.rawf(`<input type="hidden" id="nav-path" name="path" value="%s">`, path)

		if v.IsExpanded && v.ActiveGroup != nil {
			submenuPanel(h, v.ActiveGroup)
		}
		if v.IsMoreMenuOpen {
			overflowSheet(h, v.Overflow)
		}

		h.raw(`<ul class="bottom-nav__bar">`)
		for _, g := range v.Primary {
			active := g.ID == v.EffectiveGroupID
			h.rawf(`<li><button type="button" class="%s" hx-post="/nav/groups/%s/tap" aria-expanded="%s">`,
				classes("bottom-nav__item", map[string]bool{"is-active": active}), g.ID, boolAttr(active && v.IsExpanded))
			h.rawf(`<i class="icon" data-icon="%s"></i><span>%s</span></button></li>`, g.Icon, g.GroupLabel)
		}
		if v.OverflowCount > 0 {
			h.rawf(`<li><button type="button" class="%s" hx-post="/nav/more/toggle" aria-expanded="%s">`,
				classes("bottom-nav__item bottom-nav__more", map[string]bool{"is-active": v.IsMoreMenuOpen}), boolAttr(v.IsMoreMenuOpen))
			h.rawf(`<i class="icon" data-icon="more-horizontal"></i><span>More</span><span class="badge">%s</span></button></li>`, v.OverflowCount)
		}
		h.raw(`</ul></nav>`)

		return h.err
	})
}

func submenuPanel(h *htmlWriter, g *navigation.NavGroup) {
	h.rawf(`<div class="bottom-nav__submenu" hx-trigger="click from:body[!event.target.closest('#bottom-nav')]" hx-post="/nav/outside"><h3>%s</h3><ul>`, g.GroupLabel)
	for _, it := range g.Items {
		entryButton(h, it, "submenu")
	}
	h.raw(`</ul></div>`)
}

func overflowSheet(h *htmlWriter, groups []navigation.NavGroup) {
	h.raw(`<div class="bottom-nav__backdrop" hx-post="/nav/more/close"></div>`)
	h.raw(`<div class="bottom-nav__sheet" role="dialog"><button type="button" class="bottom-nav__close" hx-post="/nav/more/close">Close</button>`)
	for _, g := range groups {
		h.rawf(`<section><h3><i class="icon" data-icon="%s"></i>%s</h3><ul>`, g.Icon, g.GroupLabel)
		for _, it := range g.Items {
			entryButton(h, it, "overflow")
		}
		h.raw(`</ul></section>`)
	}
	h.raw(`</div>`)
}

func entryButton(h *htmlWriter, it navigation.MenuItem, source string) {
	vals, err := json.Marshal(map[string]string{"href": it.Href, "source": source})
	if err != nil {
		h.err = err
		return
	}
	// the JSON is attribute-escaped as a whole, so quotes in hrefs survive decoding
	h.rawf(`<li><button type="button" class="%s" hx-post="/nav/entries/tap" hx-vals="%s">`,
		classes("bottom-nav__entry", map[string]bool{"is-active": it.IsActive}), string(vals))
	h.rawf(`<i class="icon" data-icon="%s"></i>`, it.Icon)
	if it.ParentLabel != "" {
		h.rawf(`<small>%s</small>`, it.ParentLabel)
	}
	h.rawf(`<span>%s</span></button></li>`, it.Label)
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
