package outbound

// TaskDispatcher schedules work on the shared worker pool. Satisfied by *ants.Pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
