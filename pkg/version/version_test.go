package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	t.Run("Should return the bare version without a commit", func(t *testing.T) {
		assert.Equal(t, "dev", Summary())
	})
	t.Run("Should append the short commit hash", func(t *testing.T) {
		defer func(v, c string) { Version, CommitHash = v, c }(Version, CommitHash)
		Version, CommitHash = "1.0.0", "0123456789abcdef"
		assert.Equal(t, "1.0.0 (0123456)", Summary())
	})
}
