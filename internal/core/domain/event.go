package domain

// Push channel event kinds, mirrored to every live connection of the owning
// user after the corresponding store operation commits.
const (
	EventTaskCreated = "taskCreated"
	EventTaskUpdated = "taskUpdated"
	EventTaskDeleted = "taskDeleted"
)

// DeletedTaskPayload is the payload of a taskDeleted event. Created and
// updated events carry the full task record instead.
type DeletedTaskPayload struct {
	ID string `json:"id"`
}
