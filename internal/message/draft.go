package message

import "strings"

// Draft is a fully assembled, not yet dispatched mail: recipients, subject,
// and body. Recipient order is preserved from template declaration through
// address-book resolution into the compose argument.
type Draft struct {
	to      []Address
	cc      []Address
	subject Subject
	body    Body
}

// NewDraft assembles a draft. The recipient slices are copied.
func NewDraft(to, cc []Address, subject Subject, body Body) Draft {
	return Draft{
		to:      append([]Address(nil), to...),
		cc:      append([]Address(nil), cc...),
		subject: subject,
		body:    body,
	}
}

// To returns the TO recipients in declaration order.
func (d Draft) To() []Address {
	return append([]Address(nil), d.to...)
}

// Cc returns the CC recipients in declaration order.
func (d Draft) Cc() []Address {
	return append([]Address(nil), d.cc...)
}

// Subject returns the draft subject.
func (d Draft) Subject() Subject {
	return d.subject
}

// Body returns the draft body.
func (d Draft) Body() Body {
	return d.body
}

// ToLine returns the TO addresses comma-joined, empty when there are none.
func (d Draft) ToLine() string {
	return joinAddresses(d.to)
}

// CcLine returns the CC addresses comma-joined, empty when there are none.
func (d Draft) CcLine() string {
	return joinAddresses(d.cc)
}

func joinAddresses(addrs []Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ",")
}
