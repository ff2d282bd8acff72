package partials

import (
	"github.com/nfrund/guestmap/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Flash renders the session flash messages, if any.
func Flash(f view.Flashes) cmp.Node {
	if len(f.Success) == 0 && len(f.Error) == 0 {
		return nil
	}
	return g.Div(
		cmp.Map(f.Success, func(msg string) cmp.Node {
			return g.P(g.Class("flash-success"), cmp.Text(msg))
		}),
		cmp.Map(f.Error, func(msg string) cmp.Node {
			return g.P(g.Class("flash-error"), cmp.Text(msg))
		}),
	)
}
