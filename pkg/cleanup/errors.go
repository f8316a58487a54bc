package cleanup

import (
	"fmt"
	"time"

	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

// StackDeleteFailedError means a stack reached the terminal DELETE_FAILED
// state. Re-running the cleanup will not help until the cause in Reason is
// resolved.
type StackDeleteFailedError struct {
	StackName string
	Reason    string
}

func (e *StackDeleteFailedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("stack %s entered DELETE_FAILED", e.StackName)
	}
	return fmt.Sprintf("stack %s entered DELETE_FAILED: %s", e.StackName, e.Reason)
}

// WaitTimeoutError means a stack was still deleting when the wait bound
// was reached. The deletion itself may still complete on the AWS side.
type WaitTimeoutError struct {
	StackName string
	Wait      time.Duration
}

func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for stack %s to delete", e.Wait, e.StackName)
}

// isErrorCode reports whether err is an AWS API error with the given code.
func isErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
