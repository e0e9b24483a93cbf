// Package visibility tracks which console panels are shown. Panels toggle
// independently; a panel becoming visible runs its loader.
package visibility

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Panel names a section of the console.
type Panel string

const (
	PanelPlans    Panel = "plans"
	PanelTrainees Panel = "trainees"
	PanelBookings Panel = "bookings"
)

// Loader fetches a panel's data when it becomes visible.
type Loader func(ctx context.Context) error

type panelState struct {
	visible bool
	loader  Loader
}

// Controller is safe for concurrent use. Loaders run without the lock held.
type Controller struct {
	mu     sync.Mutex
	order  []Panel
	panels map[Panel]*panelState
}

func New() *Controller {
	return &Controller{panels: make(map[Panel]*panelState)}
}

// Register adds a panel with its initial visibility. loader may be nil.
func (c *Controller) Register(p Panel, visible bool, loader Loader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.panels[p]; !ok {
		c.order = append(c.order, p)
	}
	c.panels[p] = &panelState{visible: visible, loader: loader}
}

// Mount runs the loaders of every panel visible from the start. All loaders
// run; the first error is returned.
func (c *Controller) Mount(ctx context.Context) error {
	var loaders []Loader
	c.mu.Lock()
	for _, p := range c.order {
		if st := c.panels[p]; st.visible && st.loader != nil {
			loaders = append(loaders, st.loader)
		}
	}
	c.mu.Unlock()

	var first error
	for _, load := range loaders {
		if err := load(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Toggle flips p and returns its new visibility. When p becomes visible its
// loader runs; a load error is returned but the panel stays visible.
func (c *Controller) Toggle(ctx context.Context, p Panel) (bool, error) {
	c.mu.Lock()
	st, ok := c.panels[p]
	if !ok {
		c.mu.Unlock()
		return false, fmt.Errorf("unknown panel %q", p)
	}
	st.visible = !st.visible
	visible, loader := st.visible, st.loader
	c.mu.Unlock()

	if visible && loader != nil {
		return true, loader(ctx)
	}
	return visible, nil
}

// Show makes p visible, loading it if it was hidden.
func (c *Controller) Show(ctx context.Context, p Panel) error {
	c.mu.Lock()
	st, ok := c.panels[p]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("unknown panel %q", p)
	}
	wasVisible := st.visible
	st.visible = true
	loader := st.loader
	c.mu.Unlock()

	if !wasVisible && loader != nil {
		return loader(ctx)
	}
	return nil
}

// Hide makes p invisible.
func (c *Controller) Hide(p Panel) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.panels[p]
	if !ok {
		return fmt.Errorf("unknown panel %q", p)
	}
	st.visible = false
	return nil
}

func (c *Controller) Visible(p Panel) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.panels[p]
	return ok && st.visible
}

// VisiblePanels lists visible panels in registration order.
func (c *Controller) VisiblePanels() []Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.DeleteFunc(slices.Clone(c.order), func(p Panel) bool {
		return !c.panels[p].visible
	})
}

// Panels lists every registered panel in registration order.
func (c *Controller) Panels() []Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.order)
}
