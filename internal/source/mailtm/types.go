package mailtm

import (
	"encoding/json"
	"strings"

	"github.com/nhle/tempmail/internal/model"
)

// collection is the Hydra envelope around every list response.
type collection[T any] struct {
	Members    []T `json:"hydra:member"`
	TotalItems int `json:"hydra:totalItems"`
}

// Domain is one entry of GET /domains.
type Domain struct {
	ID       string `json:"id"`
	Domain   string `json:"domain"`
	IsActive bool   `json:"isActive"`
}

// credentials is the body of POST /accounts and POST /token.
type credentials struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Account is the response from POST /accounts.
type Account struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// Token is the response from POST /token.
type Token struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Attachment describes one file attached to a message.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// htmlParts decodes the "html" field, which the API sends as a list of
// strings but older deployments send as a single string.
type htmlParts []string

func (h *htmlParts) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*h = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single != "" {
		*h = htmlParts{single}
	}
	return nil
}

// Message is the response from GET /messages/{id}.
type Message struct {
	ID          string          `json:"id"`
	From        model.Address   `json:"from"`
	To          []model.Address `json:"to"`
	Subject     string          `json:"subject"`
	Intro       string          `json:"intro"`
	Text        string          `json:"text"`
	HTML        htmlParts       `json:"html"`
	Seen        bool            `json:"seen"`
	Attachments []Attachment    `json:"attachments"`
	CreatedAt   string          `json:"createdAt"`
	DownloadURL string          `json:"downloadUrl"`
}

// toDetail converts the API message into the domain detail type.
func (m *Message) toDetail() *model.MessageDetail {
	detail := &model.MessageDetail{
		ID:          m.ID,
		Subject:     m.Subject,
		From:        m.From,
		To:          m.To,
		CreatedAt:   m.CreatedAt,
		Text:        m.Text,
		HTML:        strings.Join(m.HTML, "\n"),
		Intro:       m.Intro,
		DownloadURL: m.DownloadURL,
	}
	for _, a := range m.Attachments {
		name := a.Filename
		if name == "" {
			name = "<file>"
		}
		detail.Attachments = append(detail.Attachments, name)
	}
	return detail
}
