package dto

type AuthenticateInput struct {
	Token string
}

type AccountOutput struct {
	Authenticated  bool
	Token          string
	UserID         string
	Username       string
	Email          string
	Initials       string
	ProfilePicture string
}

type TeamOutput struct {
	ID   string
	Name string
}
