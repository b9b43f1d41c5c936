package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	contents := `
# A comment line
ASYN_MODULE_VERSION = R4.39
EPICS_BASE=/cds/group/pcds/epics/base/R7.0.2
  # indented comment
NOT_AN_ASSIGNMENT
CONDITIONAL ?= maybe
COLON := value
SPACED   =   padded value
SHELL_VALUE = $(shell hostname)
$(SOMETHING) = skipped
`
	variables := ParseAssignments(contents)

	assert.Equal(t, "R4.39", variables["ASYN_MODULE_VERSION"])
	assert.Equal(t, "/cds/group/pcds/epics/base/R7.0.2", variables["EPICS_BASE"])
	assert.Equal(t, "maybe", variables["CONDITIONAL"])
	assert.Equal(t, "value", variables["COLON"])
	assert.Equal(t, "padded value", variables["SPACED"])
	assert.NotContains(t, variables, "SHELL_VALUE")
	assert.NotContains(t, variables, "NOT_AN_ASSIGNMENT")
	assert.NotContains(t, variables, "$(SOMETHING)")
	assert.Len(t, variables, 5)
}

func TestExpand(t *testing.T) {
	vars := map[string]string{
		"EPICS_SITE_TOP": "/cds/group/pcds/epics",
		"MODULE_VERSION": "R1.0",
	}

	t.Run("substitutes known references", func(t *testing.T) {
		expanded, err := Expand("$(EPICS_SITE_TOP)/modules/ioc/$(MODULE_VERSION)", vars)
		require.NoError(t, err)
		assert.Equal(t, "/cds/group/pcds/epics/modules/ioc/R1.0", expanded)
	})

	t.Run("undefined reference fails for retry", func(t *testing.T) {
		_, err := Expand("$(EPICS_SITE_TOP)/$(UNDEFINED)", vars)
		assert.ErrorIs(t, err, errUndefinedReference)
	})

	t.Run("shell values pass through unexpanded", func(t *testing.T) {
		expanded, err := Expand("$(shell echo /some/path)", vars)
		require.NoError(t, err)
		assert.Contains(t, expanded, "shell")
	})

	t.Run("plain value is unchanged", func(t *testing.T) {
		expanded, err := Expand("/cds/group/pcds/epics", vars)
		require.NoError(t, err)
		assert.Equal(t, "/cds/group/pcds/epics", expanded)
	})
}
