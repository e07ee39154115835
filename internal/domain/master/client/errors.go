package client

import "errors"

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientNameExists = errors.New("client name already exists")
	ErrClientInUse      = errors.New("client still has jobs, payments or bills")
)
