package model

import "time"

type MessageID string

// Intent classifies the purpose of a message. The set is closed; anything
// else must be rejected at construction.
type Intent string

const (
	IntentActionRequired  Intent = "ACTION_REQUIRED"
	IntentFYIReadOnly     Intent = "FYI_READ_ONLY"
	IntentRequestMeeting  Intent = "REQUEST_MEETING"
	IntentFeedbackRequest Intent = "FEEDBACK_REQUEST"
	IntentGeneral         Intent = "GENERAL"
)

var validIntents = map[Intent]bool{
	IntentActionRequired:  true,
	IntentFYIReadOnly:     true,
	IntentRequestMeeting:  true,
	IntentFeedbackRequest: true,
	IntentGeneral:         true,
}

func (i Intent) IsValid() bool {
	return validIntents[i]
}

// Status tracks the delivery lifecycle. A message starts PENDING and moves
// exactly once to SENT or FAILED, never back and never between the two.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

type CreateMessageParams struct {
	SenderEmail    string  `json:"sender_email"`
	RecipientEmail string  `json:"recipient_email"`
	IntentTag      Intent  `json:"intent_tag"`
	Subject        string  `json:"subject"`
	BodyContent    string  `json:"body_content"`
	InternalTag    *string `json:"internal_tag"`
}

// CanonicalMessage is the single normalized representation of an outbound
// structured message, independent of transport.
type CanonicalMessage struct {
	ID             MessageID `db:"ID" json:"message_id"`
	CreatedAt      time.Time `db:"CreatedAt" json:"timestamp"`
	SenderEmail    string    `db:"SenderEmail" json:"sender_email"`
	RecipientEmail string    `db:"RecipientEmail" json:"recipient_email"`
	IntentTag      Intent    `db:"IntentTag" json:"intent_tag"`
	Subject        string    `db:"Subject" json:"subject"`
	BodyContent    string    `db:"BodyContent" json:"body_content"`
	InternalTag    *string   `db:"InternalTag" json:"internal_tag,omitempty"`
	Status         Status    `db:"Status" json:"status"`
}

// NewMessage builds a validated CanonicalMessage from untrusted input. The
// ID and timestamp are generated here, never supplied by the caller.
func NewMessage(params *CreateMessageParams) (*CanonicalMessage, error) {
	message := &CanonicalMessage{
		ID:             MessageID(CreateID()),
		CreatedAt:      time.Now().UTC(),
		SenderEmail:    params.SenderEmail,
		RecipientEmail: params.RecipientEmail,
		IntentTag:      params.IntentTag,
		Subject:        params.Subject,
		BodyContent:    params.BodyContent,
		InternalTag:    params.InternalTag,
		Status:         StatusPending,
	}
	if err := message.Validate(); err != nil {
		return nil, err
	}
	return message, nil
}

// Validate re-checks the construction rules so the boundary and the model
// both enforce them.
func (m *CanonicalMessage) Validate() error {
	if !m.IntentTag.IsValid() {
		return &ValidationError{Field: "intent_tag", Value: string(m.IntentTag), Reason: "not one of the defined intents"}
	}
	if m.SenderEmail == "" {
		return &ValidationError{Field: "sender_email", Reason: "must not be empty"}
	}
	if m.RecipientEmail == "" {
		return &ValidationError{Field: "recipient_email", Reason: "must not be empty"}
	}
	return nil
}
