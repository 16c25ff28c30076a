package ports

// Notifier surfaces a user-facing notice without treating it as a fault.
type Notifier interface {
	Notify(message string)
}

type NopNotifier struct{}

func (NopNotifier) Notify(string) {}
