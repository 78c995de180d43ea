package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"yi_connect_echo/internal/navigation"
)

// Breadcrumb represents a navigation trail entry. An empty URL marks the current page.
type Breadcrumb struct {
	Title string
	URL   string
}

// PageProps is the data shared by every authenticated page
type PageProps struct {
	Title       string
	Breadcrumbs []Breadcrumb
	UserEmail   string
	UserRole    string
	Path        string
	Nav         navigation.View
}

// Page renders the base layout around body with the bottom navigation
func Page(p PageProps, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		head(h, p.Title)
		h.raw(`<body><header class="topbar">`)
		h.rawf(`<span class="brand">Yi Connect</span><span class="user">%s · %s</span>`, p.UserEmail, p.UserRole)
		h.raw(`<form method="post" action="/auth/logout"><button type="submit">Log out</button></form></header>`)
		breadcrumbs(h, p.Breadcrumbs)
		h.raw(`<main>`)
		if h.err != nil {
			return h.err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		h.raw(`</main>`)
		if h.err != nil {
			return h.err
		}
		if err := BottomNav(p.Nav, p.Path).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</body></html>`)
		return h.err
	})
}

// DashboardProps holds the dashboard page data
type DashboardProps struct {
	PageProps
	Shortcuts []navigation.MenuItem
}

// Dashboard renders the landing page with shortcuts into the user's menu
func Dashboard(p DashboardProps) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.rawf(`<h1>%s</h1><ul class="shortcuts">`, p.Title)
		for _, it := range p.Shortcuts {
			h.rawf(`<li><a href="%s"><i class="icon" data-icon="%s"></i>%s</a></li>`, it.Href, it.Icon, it.Label)
		}
		h.raw(`</ul>`)
		return h.err
	})
	return Page(p.PageProps, body)
}

// ErrorPageProps holds the error page data
type ErrorPageProps struct {
	PageProps
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}

func errorBody(p ErrorPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.rawf(`<section class="error"><h1>%s</h1><p>%s</p>`, p.ErrorTitle, p.ErrorMessage)
		if p.BackLink != "" {
			h.rawf(`<a href="%s">%s</a>`, p.BackLink, p.BackText)
		}
		h.raw(`</section>`)
		return h.err
	})
}

// ErrorPage renders an error inside the authenticated layout
func ErrorPage(p ErrorPageProps) templ.Component {
	return Page(p.PageProps, errorBody(p))
}

// PublicErrorPage renders an error without the navigation shell
func PublicErrorPage(p ErrorPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		head(h, p.Title)
		h.raw(`<body><main>`)
		if h.err != nil {
			return h.err
		}
		if err := errorBody(p).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// LoginProps carries the Firebase web configuration
type LoginProps struct {
	FirebaseAPIKey     string
	FirebaseAuthDomain string
	FirebaseProjectID  string
	Error              string
}

// LoginPage renders the sign-in page
func LoginPage(p LoginProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		head(h, "Sign in")
		h.raw(`<body class="login"><main><h1>Yi Connect</h1>`)
		if p.Error != "" {
			h.rawf(`<p class="error">%s</p>`, p.Error)
		}
		h.rawf(`<div id="firebase-config" data-api-key="%s" data-auth-domain="%s" data-project-id="%s"></div>`,
			p.FirebaseAPIKey, p.FirebaseAuthDomain, p.FirebaseProjectID)
		h.raw(`<button id="google-sign-in" type="button">Sign in with Google</button>`)
		h.raw(`<script type="module" src="/static/js/login.js"></script></main></body></html>`)
		return h.err
	})
}

func head(h *htmlWriter, title string) {
	h.rawf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s · Yi Connect</title>`, title)
	h.raw(`<link rel="stylesheet" href="/static/css/app.css"><script src="/static/js/htmx.min.js" defer></script></head>`)
}

func breadcrumbs(h *htmlWriter, crumbs []Breadcrumb) {
	if len(crumbs) == 0 {
		return
	}
	h.raw(`<nav class="breadcrumbs"><ol>`)
	for _, c := range crumbs {
		if c.URL == "" {
			h.rawf(`<li aria-current="page">%s</li>`, c.Title)
			continue
		}
		h.rawf(`<li><a href="%s">%s</a></li>`, c.URL, c.Title)
	}
	h.raw(`</ol></nav>`)
}
