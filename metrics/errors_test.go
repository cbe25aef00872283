package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, NewInputTypeError("c", "x").Error(), "c")
	assert.Contains(t, NewInvalidMetricError("missing").Error(), "missing")
	assert.Contains(t, NewDuplicateMetricError("dup", "different kind").Error(), "dup")
	assert.Contains(t, NewDuplicateMetricError("dup", "different kind").Error(), "different kind")
	assert.Contains(t, NewInvalidConfigError("bad size").Error(), "bad size")
}

func TestErrorsImplementErrorInterface(t *testing.T) {
	var _ error = InputTypeError{}
	var _ error = InvalidMetricError{}
	var _ error = DuplicateMetricError{}
	var _ error = InvalidConfigError{}
}
