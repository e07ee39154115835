package client

import "time"

// Client is a customer that jobs are billed to.
type Client struct {
	ID        string
	Name      string
	Phone     *string
	Address   *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
