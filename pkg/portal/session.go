package portal

import (
	"gestor/pkg/domain"
	"gestor/pkg/view"
)

// Session mirrors the client-side state the original portal kept per
// browser session.
type Session struct {
	LoggedIn    bool
	Token       string
	CurrentUser string
	State       view.State
}

func newViewState() *view.State { return view.NewState() }

// SwitchModule changes the active module and resets any open form.
func (c *Client) SwitchModule(m domain.Module) {
	c.session.State.SwitchModule(m)
}

// StartCreate opens the create form for the active module.
func (c *Client) StartCreate() { c.session.State.StartCreate() }

// StartEdit opens the edit form for record id in the active module.
func (c *Client) StartEdit(id string) { c.session.State.StartEdit(id) }

// CancelForm abandons the open form without saving.
func (c *Client) CancelForm() { c.session.State.Cancel() }
