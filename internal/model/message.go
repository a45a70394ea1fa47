package model

// NoSubject is shown wherever a message has an empty subject.
const NoSubject = "(no subject)"

// Address is a single mailbox address with an optional display name.
type Address struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// String formats the address as "Name <addr>", or the bare address when
// there is no display name.
func (a Address) String() string {
	if a.Name == "" {
		return a.Address
	}
	return a.Name + " <" + a.Address + ">"
}

// MessageSummary is the lightweight listing record for one message.
type MessageSummary struct {
	// ID is the provider's identifier, unique within the mailbox.
	ID string `json:"id"`

	From    Address `json:"from"`
	Subject string  `json:"subject"`
	Intro   string  `json:"intro"`

	// CreatedAt is the provider's ISO-8601 timestamp, kept as a string.
	CreatedAt string `json:"createdAt"`

	// Seen reports whether the message has been opened.
	Seen bool `json:"seen"`
}

// DisplaySubject returns the subject or the placeholder when it is empty.
func (m MessageSummary) DisplaySubject() string {
	if m.Subject == "" {
		return NoSubject
	}
	return m.Subject
}

// MessageDetail is the full record for one message, fetched on demand.
type MessageDetail struct {
	ID          string
	Subject     string
	From        Address
	To          []Address
	CreatedAt   string
	Text        string
	HTML        string
	Intro       string
	Attachments []string
	DownloadURL string
}

// DisplaySubject returns the subject or the placeholder when it is empty.
func (m *MessageDetail) DisplaySubject() string {
	if m.Subject == "" {
		return NoSubject
	}
	return m.Subject
}

// ErrorDetail builds the message shown in place of one that could not be
// fetched, so an explicit open always gives the user feedback.
func ErrorDetail(err error) *MessageDetail {
	return &MessageDetail{
		Subject: "Error",
		From:    Address{Address: "system"},
		Text:    "Failed to fetch message: " + err.Error(),
	}
}
