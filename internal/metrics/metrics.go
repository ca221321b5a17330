package metrics

const Namespace = "scheduler"

const (
	LabelStatus = "status"

	StatusSuccess = "success"
	StatusFailure = "failure"
)
