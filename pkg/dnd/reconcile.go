package dnd

import (
	"fmt"
	"math"

	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/geometry"
)

// referenceRect returns the rectangle hit tests are made against: the proxy
// itself, or the first element of its subtree carrying the accept class.
func (c *Controller[E]) referenceRect() (geometry.Rect, bool) {
	proxy := c.session.proxy
	marker := c.Settings.AcceptClass
	if marker == "" || c.host.HasClass(proxy, marker) {
		return c.host.BoundingRect(proxy), true
	}
	el, ok := c.host.QueryClass(proxy, marker)
	if !ok {
		return geometry.Rect{}, false
	}
	return c.host.BoundingRect(el), true
}

// reconcile runs one overlap pass. Membership is queried from the host on
// every call since targets may be added or removed between ticks.
func (c *Controller[E]) reconcile(gen uint64) {
	ref, ok := c.referenceRect()
	if !ok {
		errors.Degraded("dnd.reconcile", "", fmt.Errorf("accept class %q not found in proxy subtree", c.Settings.AcceptClass))
		return
	}

	tolerance := c.Settings.Tolerance
	threshold := tolerance.Threshold()
	warned := false

	for _, category := range c.registry.Droppables() {
		for _, el := range c.host.ElementsByClass(string(category)) {
			rect := c.host.BoundingRect(el)

			switch {
			case !geometry.Intersects(ref, rect):
				c.tracker.Clear(el)
			case tolerance == TolerancePartial || tolerance == ToleranceFull:
				pct := geometry.OverlapPercentage(ref, rect)
				if math.IsNaN(pct) && !warned {
					warned = true
					errors.Degraded("dnd.reconcile", string(category), fmt.Errorf("zero-area reference rectangle %v", ref))
				}
				if geometry.MeetsThreshold(pct, threshold) {
					c.tracker.Report(el, category)
				} else {
					c.tracker.Clear(el)
				}
			default:
				c.tracker.Report(el, category)
			}

			if !c.alive(gen) {
				return
			}
		}
	}
}
