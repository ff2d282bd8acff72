package pages

import (
	"encoding/json"
	"strconv"

	"github.com/nfrund/guestmap/internal/form"
	"github.com/nfrund/guestmap/internal/geo"
	"github.com/nfrund/guestmap/internal/locate"
	"github.com/nfrund/guestmap/internal/view"
	"github.com/nfrund/guestmap/web/src/templates/layouts"
	"github.com/nfrund/guestmap/web/src/templates/partials"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
	hx "maragu.dev/gomponents-htmx"
)

// MapPageData carries everything the guestbook page renders: the bucketed
// messages, the resolved visitor location, the form snapshot, and any flashes.
type MapPageData struct {
	Buckets []geo.Bucket
	Res     locate.Resolution
	Form    form.Snapshot
	Flash   view.Flashes
}

// marker is the wire shape handed to the Leaflet script, one per bucket.
type marker struct {
	Lat     float64       `json:"lat"`
	Lng     float64       `json:"lng"`
	Entries []markerEntry `json:"entries"`
}

type markerEntry struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// MapPage is the full guestbook page: map, markers, and the message form.
func MapPage(data MapPageData) cmp.Node {
	return layouts.Base("GuestMap",
		g.Div(g.ID("map"), g.Class("map")),
		g.Div(g.Class("message-form"),
			g.H2(cmp.Text("Welcome to GuestMap!")),
			g.P(cmp.Text("Leave a message with your location!")),
			partials.Flash(data.Flash),
			FormCard(data.Form),
		),
		mapScript(data),
	)
}

// FormCard renders the submission form for the given snapshot. HTMX swaps the
// card in place on submit, so success and failure replace the form rather than
// navigating away.
func FormCard(s form.Snapshot) cmp.Node {
	switch s.State {
	case form.StateSucceeded:
		return g.Div(g.ID("guestbook-form"),
			g.P(g.Class("flash-success"), cmp.Text("Thanks for leaving a message!")),
		)
	case form.StateFailed:
		return g.Div(g.ID("guestbook-form"),
			g.P(g.Class("flash-error"), cmp.Text("Sending failed: "+s.FailReason)),
			formElement(s),
		)
	default:
		return g.Div(g.ID("guestbook-form"),
			cmp.If(!s.LocationKnown,
				g.P(cmp.Text("Share your location to leave a message.")),
			),
			formElement(s),
		)
	}
}

func formElement(s form.Snapshot) cmp.Node {
	return g.FormEl(
		hx.Post("/guestbook/messages"),
		hx.Target("#guestbook-form"),
		hx.Swap("outerHTML"),
		g.LabelEl(g.For("name"), cmp.Text("Name")),
		g.Input(g.Type("text"), g.Name("name"), g.ID("name"),
			g.Placeholder("Enter your name"), g.Value(s.Name)),
		g.LabelEl(g.For("message"), cmp.Text("Message")),
		g.Textarea(g.Name("message"), g.ID("message"),
			g.Placeholder("Enter your message"), cmp.Text(s.Message)),
		g.Input(g.Type("hidden"), g.Name("latitude"), g.Value(formatCoord(s.Location.Lat))),
		g.Input(g.Type("hidden"), g.Name("longitude"), g.Value(formatCoord(s.Location.Lng))),
		g.Button(g.Type("submit"), cmp.Text("Send"),
			cmp.If(!s.LocationKnown, g.Disabled()),
		),
	)
}

// mapScript emits the marker data and the Leaflet/geolocation glue. Marker
// data goes through encoding/json, which escapes angle brackets, so message
// text cannot break out of the script element.
func mapScript(data MapPageData) cmp.Node {
	markers := make([]marker, 0, len(data.Buckets))
	for _, b := range data.Buckets {
		m := marker{Lat: b.Primary.Latitude, Lng: b.Primary.Longitude}
		for _, msg := range b.Messages() {
			m.Entries = append(m.Entries, markerEntry{Name: msg.Name, Message: msg.Message})
		}
		markers = append(markers, m)
	}

	markerJSON, err := json.Marshal(markers)
	if err != nil {
		markerJSON = []byte("[]")
	}

	center := struct {
		Lat   float64 `json:"lat"`
		Lng   float64 `json:"lng"`
		Zoom  int     `json:"zoom"`
		Known bool    `json:"known"`
	}{data.Res.Point.Lat, data.Res.Point.Lng, data.Res.Zoom, data.Res.Known}
	centerJSON, err := json.Marshal(center)
	if err != nil {
		centerJSON = []byte("{}")
	}

	return g.Script(
		cmp.Raw("const MARKERS = "+string(markerJSON)+";\n"),
		cmp.Raw("const CENTER = "+string(centerJSON)+";\n"),
		cmp.Raw(mapJS),
	)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// mapJS draws the base map, the visitor marker, and one marker per bucket
// with a popup listing all co-located messages. When the visitor's location
// is still unknown it asks the browser once and reloads with the answer; the
// server falls back to an IP lookup when the browser declines.
const mapJS = `
function esc(s) { const d = document.createElement('div'); d.textContent = s; return d.innerHTML; }

const map = L.map('map').setView([CENTER.lat, CENTER.lng], CENTER.zoom);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; <a href="http://osm.org/copyright">OpenStreetMap</a> contributors'
}).addTo(map);

if (CENTER.known) {
  L.marker([CENTER.lat, CENTER.lng]).addTo(map);
}

for (const m of MARKERS) {
  const lines = m.entries
    .map(e => '<p><em>' + esc(e.name) + ': </em>' + esc(e.message) + '</p>')
    .join('');
  L.marker([m.lat, m.lng]).addTo(map).bindPopup(lines);
}

const params = new URLSearchParams(window.location.search);
if (!CENTER.known && 'geolocation' in navigator && !params.has('lat')) {
  navigator.geolocation.getCurrentPosition(pos => {
    params.set('lat', pos.coords.latitude);
    params.set('lng', pos.coords.longitude);
    window.location.search = params.toString();
  });
}
`
