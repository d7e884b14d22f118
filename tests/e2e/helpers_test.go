package main_test

import (
	"errors"
	"os/exec"
	"strconv"
)

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func asExitError(err error, target **exec.ExitError) bool {
	return errors.As(err, target)
}
