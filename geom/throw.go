package geom

import "github.com/pkg/errors"

// Threading errors through the recursive chain building in random polygon
// generation would add a lot of noise. Instead, we panic with a
// degenerateError, and the public API recovers to convert to an error.

type degenerateError struct {
	error
}

// Panic with a degenerateError.
func fatalf(format string, args ...interface{}) {
	panic(degenerateError{errors.Errorf(format, args...)})
}

// Converts a recovered degenerateError back to an error. Any other panic is
// re-raised.
func handleDegeneratePanicRecover(r interface{}) error {
	if r != nil {
		if err, ok := r.(degenerateError); ok {
			return err.error
		}
		panic(r)
	}
	return nil
}
