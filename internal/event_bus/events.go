package event_bus

const (
	// RecipientChangedEvent is published after any recipient insert, patch, or delete.
	RecipientChangedEvent EventType = "recipient.changed"
	// ItemChangedEvent is published after any gift item insert, patch, or delete,
	// including deletes performed by the recipient cascade.
	ItemChangedEvent EventType = "item.changed"
)

type RecipientChanged struct {
	Id int64
}

type ItemChanged struct {
	Id          int64
	RecipientId int64
}
