package ports

// Notifier delivers task-change events to every live connection of a user.
// Delivery is fire-and-forget: a failed delivery must never affect the
// mutation that triggered it.
type Notifier interface {
	Notify(userID, kind string, payload any)
}
