package domain

import "time"

// UploadGrant is a short-lived write credential for a single storage object
type UploadGrant struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}

// StoredObject describes an object living in the storage bucket
type StoredObject struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}
