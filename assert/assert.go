package assert

import "github.com/strafekit/strafe/oerror"

// IsTrue panics with a formatted error when ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
