package domain

import "time"

// File is the metadata record for one uploaded object (incident photos,
// profile photos). The bytes live in the object store under Key.
type File struct {
	FileID           string    `json:"id" dynamodbav:"file_id"`
	Key              string    `json:"key" dynamodbav:"key"`
	Size             int64     `json:"size" dynamodbav:"size"`
	ContentType      string    `json:"content_type" dynamodbav:"content_type"`
	Name             string    `json:"name" dynamodbav:"name"`
	Hash             string    `json:"hash" dynamodbav:"hash"`
	UploadedByUserID string    `json:"uploaded_by" dynamodbav:"uploaded_by_user_id"`
	Enable           bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updated" dynamodbav:"updated_at"`
}
