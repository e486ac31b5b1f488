package domain

type User struct {
	Id       UserId   `json:"id"`
	Username Username `json:"username"`
	PassHash string   `json:"-"`
}

type Credentials struct {
	Username Username
	Password Password
}

// to iterate thru layers: handler -> service -> storage
type RegistrationData struct {
	Username     Username
	Password     Password
	Confirmation Password
}
