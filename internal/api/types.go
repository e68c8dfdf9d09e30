package api

import (
	"context"
	"time"

	"nfctag/nfcTerm/internal/models"
)

// ContactRequest is the write payload for create and update. The store
// computes the encoded payload and its size; the client never sends them.
type ContactRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Text        string `json:"text"`
}

// ContactStore is the remote store surface consumed by the UI.
type ContactStore interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	CreateContact(ctx context.Context, req ContactRequest) (*models.Contact, error)
	UpdateContact(ctx context.Context, id string, req ContactRequest) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// RetryCount is the total number of attempts for reads. Zero disables
	// retries; negative values are rejected.
	RetryCount int
}

const DefaultTimeout = 30 * time.Second
