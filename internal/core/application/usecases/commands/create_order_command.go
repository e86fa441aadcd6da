package commands

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a
// CreateOrderCommand was not created via its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor")

// CreateOrderCommand represents a request to take in a new writing order
// for a website's client: the work's title and size, the deadline, an
// optional preferred writer, and the pricing inputs used to compute the
// quote at intake time.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	websiteID kernel.UUID
	clientID  kernel.UUID

	title    string
	pages    int
	slides   int
	deadline time.Time

	preferredWriterID *kernel.UUID
	writerLevel       string
	extraServices     []string
	discountCode      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order intake command.
func NewCreateOrderCommand(
	orderID, websiteID, clientID kernel.UUID,
	title string,
	pages, slides int,
	deadline time.Time,
	preferredWriterID *kernel.UUID,
	writerLevel string,
	extraServices []string,
	discountCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		preferredWriterID: preferredWriterID,
		writerLevel:       writerLevel,
		extraServices:     extraServices,
		discountCode:      discountCode,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setWebsiteID(websiteID),
		cmd.setClientID(clientID),
		cmd.setTitle(title),
		cmd.setSize(pages, slides),
		cmd.setDeadline(deadline),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if preferredWriterID != nil {
		if err := preferredWriterID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID             { return c.orderID }
func (c CreateOrderCommand) WebsiteID() kernel.UUID           { return c.websiteID }
func (c CreateOrderCommand) ClientID() kernel.UUID            { return c.clientID }
func (c CreateOrderCommand) Title() string                    { return c.title }
func (c CreateOrderCommand) Pages() int                       { return c.pages }
func (c CreateOrderCommand) Slides() int                      { return c.slides }
func (c CreateOrderCommand) Deadline() time.Time              { return c.deadline }
func (c CreateOrderCommand) PreferredWriterID() *kernel.UUID  { return c.preferredWriterID }
func (c CreateOrderCommand) WriterLevel() string              { return c.writerLevel }
func (c CreateOrderCommand) ExtraServices() []string          { return c.extraServices }
func (c CreateOrderCommand) DiscountCode() string             { return c.discountCode }

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setWebsiteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.websiteID = id
	return nil
}

func (c *CreateOrderCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clientID = id
	return nil
}

func (c *CreateOrderCommand) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	c.title = title
	return nil
}

func (c *CreateOrderCommand) setSize(pages, slides int) error {
	if pages < 0 || slides < 0 || (pages == 0 && slides == 0) {
		return errs.NewValueIsInvalidError("pages")
	}
	c.pages = pages
	c.slides = slides
	return nil
}

func (c *CreateOrderCommand) setDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return errs.NewValueIsRequiredError("deadline")
	}
	c.deadline = deadline
	return nil
}
