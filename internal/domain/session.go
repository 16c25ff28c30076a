package domain

type Session struct {
	ID      string
	Account Address
}

func (s Session) Connected() bool {
	return !s.Account.IsZero()
}
