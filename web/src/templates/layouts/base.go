package layouts

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Base wraps page content in the HTML shell. It pulls in Leaflet and HTMX
// from their CDNs plus the small amount of styling the guestbook needs.
func Base(title string, body ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(title)),
				g.Link(
					g.Rel("stylesheet"),
					g.Href("https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"),
				),
				g.Script(g.Src("https://unpkg.com/leaflet@1.9.4/dist/leaflet.js")),
				g.Script(g.Src("https://unpkg.com/htmx.org@1.9.12")),
				g.StyleEl(cmp.Raw(baseCSS)),
			),
			g.Body(body...),
		),
	)
}

// baseCSS keeps the map full-screen with the message form floating above it.
const baseCSS = `
html, body { margin: 0; height: 100%; font-family: sans-serif; }
.map { position: absolute; inset: 0; z-index: 0; }
.message-form {
  position: absolute; top: 1rem; right: 1rem; z-index: 1000;
  width: 18rem; padding: 1rem; border-radius: 0.5rem;
  background: rgba(255, 255, 255, 0.95); box-shadow: 0 2px 8px rgba(0,0,0,0.3);
}
.message-form h2 { margin-top: 0; font-size: 1.1rem; }
.message-form label { display: block; margin: 0.5rem 0 0.2rem; font-size: 0.9rem; }
.message-form input, .message-form textarea { width: 100%; box-sizing: border-box; }
.message-form button { margin-top: 0.75rem; }
.flash-success { color: #0a6b2d; }
.flash-error { color: #a11; }
`
