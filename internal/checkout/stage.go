package checkout

// Stage is the checkout session's position in its state machine.
type Stage string

const (
	StageSelectingAddress Stage = "SELECTING_ADDRESS"
	StageCreatingAddress  Stage = "CREATING_ADDRESS"
	StageEditingAddress   Stage = "EDITING_ADDRESS"
	StageSelectingPayment Stage = "SELECTING_PAYMENT"
	StageSubmitting       Stage = "SUBMITTING"
	StageSucceeded        Stage = "SUCCEEDED"
	StageFailed           Stage = "FAILED"
)

func (s Stage) IsTerminal() bool {
	return s == StageSucceeded
}

func (s Stage) String() string {
	return string(s)
}
