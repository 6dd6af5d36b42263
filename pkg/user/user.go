package user

// User is an account created on first successful Google sign-in. Recipients
// and items are shared household data, so the user record only establishes
// who may access them.
type User struct {
	Id          int64
	Email       string
	DisplayName string
	PhotoUrl    string
}
