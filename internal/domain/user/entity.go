package user

// User represents a user record as persisted in the user store.
type User struct {
	ID        string // ID is the server-generated unique identifier
	Name      string // Name is the full name of the user
	Email     string // Email is the email address of the user
	AvatarURL string // AvatarURL points at the stored avatar, empty when none was uploaded
}
