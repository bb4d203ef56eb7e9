package session

// ProgressReporter is shown around a blocking completion call.
// Stop must not return until everything the reporter started has finished
// writing, because the reply is displayed right after it.
type ProgressReporter interface {
	Start()
	Stop()
}

type noProgress struct{}

func (noProgress) Start() {}
func (noProgress) Stop()  {}
