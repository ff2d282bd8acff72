package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/guestmap/internal/domain"
	"github.com/nfrund/guestmap/internal/form"
	"github.com/nfrund/guestmap/internal/geo"
	"github.com/nfrund/guestmap/internal/geoip"
	"github.com/nfrund/guestmap/internal/locate"
	"github.com/nfrund/guestmap/internal/middleware"
	"github.com/nfrund/guestmap/internal/pubsub"
	"github.com/nfrund/guestmap/internal/rendering"
	"github.com/nfrund/guestmap/internal/topics"
	"github.com/nfrund/guestmap/internal/view"
	"github.com/nfrund/guestmap/web/src/templates/pages"
)

// GuestbookHandler serves the HTML side of the guestbook: the map page and
// the htmx form submissions.
type GuestbookHandler struct {
	store     domain.MessageRepository
	publisher pubsub.Publisher
	geoip     *geoip.Client
	renderer  *rendering.UniversalRenderer
}

func NewGuestbookHandler(store domain.MessageRepository, publisher pubsub.Publisher, gc *geoip.Client) *GuestbookHandler {
	return &GuestbookHandler{
		store:     store,
		publisher: publisher,
		geoip:     gc,
		renderer:  rendering.NewUniversalRenderer(),
	}
}

// MapPage renders the guestbook map. The visitor's location comes from
// explicit lat/lng query parameters when the browser supplied them, with an
// IP lookup as the fallback. Neither source succeeding still renders the
// page, just zoomed out on the world with the form disabled.
func (h *GuestbookHandler) MapPage(c echo.Context) error {
	ctx := c.Request().Context()
	log := middleware.FromContext(ctx)

	var sources []locate.Source
	if src, ok := querySource(c); ok {
		sources = append(sources, src)
	}
	sources = append(sources, h.geoip.Source(c.RealIP()))
	res := locate.Resolve(ctx, sources...)

	snapshot := form.Snapshot{}
	snapshot = form.Reduce(snapshot, form.LocationResolved{Resolution: res})

	var buckets []geo.Bucket
	msgs, err := h.store.ListMessages(ctx)
	if err != nil {
		log.Error("listing messages for map page", "error", err)
	} else {
		buckets = geo.Group(msgs)
		snapshot = form.Reduce(snapshot, form.MessagesLoaded{})
	}

	page := view.AdaptGomponentToTempl(pages.MapPage(pages.MapPageData{
		Buckets: buckets,
		Res:     res,
		Form:    snapshot,
		Flash:   view.GetFlashes(c),
	}))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// SubmitMessage handles the form post. Htmx requests get the replacement form
// card so outcomes surface inline; plain posts get a flash and a redirect.
func (h *GuestbookHandler) SubmitMessage(c echo.Context) error {
	ctx := c.Request().Context()
	log := middleware.FromContext(ctx)

	snapshot := form.Snapshot{
		Name:    c.FormValue("name"),
		Message: c.FormValue("message"),
	}
	lat, latErr := strconv.ParseFloat(c.FormValue("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(c.FormValue("longitude"), 64)
	if latErr == nil && lngErr == nil {
		snapshot = form.Reduce(snapshot, form.LocationResolved{
			Resolution: locate.Resolution{
				Point: locate.Point{Lat: lat, Lng: lng},
				Known: true,
				Zoom:  locate.ZoomClose,
			},
		})
	}
	snapshot = form.Reduce(snapshot, form.MessagesLoaded{})

	snapshot = form.Reduce(snapshot, form.SubmitClicked{})
	if snapshot.State != form.StateSending {
		snapshot.State = form.StateFailed
		snapshot.FailReason = "check your name, message and location"
		return h.respondSubmit(c, snapshot)
	}

	msg := &domain.Message{
		Name:      snapshot.Name,
		Message:   snapshot.Message,
		Latitude:  snapshot.Location.Lat,
		Longitude: snapshot.Location.Lng,
	}
	// The snapshot only gates on name, message and location-known; the
	// coordinate ranges are checked here, against the same rules the JSON
	// API enforces, before anything reaches the store.
	if err := msg.Validate(); err != nil {
		snapshot = form.Reduce(snapshot, form.SendFailed{Reason: "check your name, message and location"})
		return h.respondSubmit(c, snapshot)
	}
	stored, err := h.store.CreateMessage(ctx, msg)
	if err != nil {
		log.Error("storing guestbook message", "error", err)
		snapshot = form.Reduce(snapshot, form.SendFailed{Reason: "could not save your message"})
		return h.respondSubmit(c, snapshot)
	}

	h.publishCreated(ctx, stored)
	snapshot = form.Reduce(snapshot, form.SendSucceeded{})
	return h.respondSubmit(c, snapshot)
}

// respondSubmit delivers the submission outcome. An htmx request gets the
// replacement form card; a plain form post gets the outcome as a session
// flash and a redirect back to the map.
func (h *GuestbookHandler) respondSubmit(c echo.Context, snapshot form.Snapshot) error {
	if isHTMX(c) {
		return h.renderFragment(c, pages.FormCard(snapshot))
	}

	switch snapshot.State {
	case form.StateSucceeded:
		view.SetFlashSuccess(c, "Thanks for leaving a message!")
	case form.StateFailed:
		view.SetFlashError(c, "Sending failed: "+snapshot.FailReason)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// isHTMX reports whether the request came from htmx rather than a plain
// browser form post.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// renderFragment writes a component as an htmx swap target.
func (h *GuestbookHandler) renderFragment(c echo.Context, component interface{}) error {
	buf, err := h.renderer.RenderComponent(c.Request().Context(), component)
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf)
}

func (h *GuestbookHandler) publishCreated(ctx context.Context, msg *domain.Message) {
	if h.publisher == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = h.publisher.Publish(ctx, pubsub.Message{
		Topic:   topics.MessageCreated,
		Payload: payload,
	})
}

// querySource turns explicit lat/lng query parameters into a location
// source. Both must parse for the pair to count.
func querySource(c echo.Context) (locate.Source, bool) {
	latStr, lngStr := c.QueryParam("lat"), c.QueryParam("lng")
	if latStr == "" || lngStr == "" {
		return nil, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, false
	}
	return locate.Static(locate.Point{Lat: lat, Lng: lng}), true
}
