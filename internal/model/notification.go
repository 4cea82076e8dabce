package model

import "time"

// Variant selects how a notification is presented.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDestructive
)

// Notification is a transient message surfaced to the user after an
// operation completes.
type Notification struct {
	// Title is the human-readable notification text.
	Title string `json:"title"`

	// Variant is VariantDestructive for failures.
	Variant Variant `json:"variant"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}

// Success builds a default-variant notification.
func Success(title string) Notification {
	return Notification{Title: title, Variant: VariantDefault, CreatedAt: time.Now()}
}

// Failure builds a destructive notification.
func Failure(title string) Notification {
	return Notification{Title: title, Variant: VariantDestructive, CreatedAt: time.Now()}
}

// IsFailure reports whether the notification reports a failed operation.
func (n Notification) IsFailure() bool {
	return n.Variant == VariantDestructive
}
