package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/refminer/pkg/version"
)

func TestString(t *testing.T) {
	version.InitBinaryVersion()

	out := version.String()
	assert.Contains(t, out, "refminer ")
	assert.Contains(t, out, "commit: ")
	assert.NotEmpty(t, version.Version)
}
