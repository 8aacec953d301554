package apierrors

const (
	MsgFailListTask        = "errorListTask"
	MsgFailGetTask         = "failGetTask"
	MsgInvalidTaskID       = "invalidTaskID"
	MsgInvalidTaskPayload  = "invalidTaskPayload"
	MsgTaskNotFound        = "taskNotFound"
	MsgFailCreateTask      = "failCreateTask"
	MsgFailUpdateTask      = "failUpdateTask"
	MsgFailDeleteTask      = "failDeleteTask"
	MsgEmptyDescription    = "emptyDescription"
	MsgFailSuggestPriority = "failSuggestPriority"
)
