package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh 24-hex-character object id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether s is a well-formed object id.
func IsValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}
