package scheduler

const (
	ErrMsgInvalidCronExpression = "invalid cron expression"
	LogMsgEnqueueRejected       = "Scheduled job rejected by worker pool"
)
