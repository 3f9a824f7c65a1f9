package eventlogging

type RecordStatus int

const (
	StatusWritten RecordStatus = iota
	StatusSuppressed
)

func (s RecordStatus) String() string {
	if s == StatusWritten {
		return "written"
	}
	return "suppressed"
}

// RecordOutcome reports what happened to a single record call. Reason holds
// the swallowed error of a suppressed write.
type RecordOutcome struct {
	Status RecordStatus
	Reason error
}

func (o RecordOutcome) Written() bool {
	return o.Status == StatusWritten
}
