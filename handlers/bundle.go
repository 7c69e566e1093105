package handlers

// HandlerBundle groups the handler sets the route registry wires up.
type HandlerBundle struct {
	Wizard   *WizardHandler
	Document *DocumentHandler
	Guest    *GuestHandler
}
