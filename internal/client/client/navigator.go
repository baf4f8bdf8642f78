package client

// Navigator is the client's view of the application's router. After an
// unrecoverable auth failure the client sends the user to the login location.
type Navigator interface {
	Location() string
	Navigate(location string)
}

type nopNavigator struct{}

func (nopNavigator) Location() string { return "" }
func (nopNavigator) Navigate(string)  {}
