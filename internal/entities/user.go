// Package entities contains core business entities.
package entities

// User is an account that can invite or be invited.
type User struct {
	ID    string
	Email string
	Name  string
}
