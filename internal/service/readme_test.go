package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadmeService_Render(t *testing.T) {
	svc := NewReadmeService()
	date := time.Date(2015, time.September, 3, 10, 0, 0, 0, time.UTC)
	t.Run("Should substitute every token", func(t *testing.T) {
		out := svc.Render("ZF {MINOR}: {VERSION} released {DATE}; see {VERSION}", "2.4", "2.4.3", date)
		assert.Equal(t, "ZF 2.4: 2.4.3 released 03 September 2015; see 2.4.3", out)
	})
	t.Run("Should render the embedded template", func(t *testing.T) {
		out := svc.Render(DefaultReadmeTemplate(), "2.4", "2.4.3", date)
		assert.Contains(t, out, "*Zend Framework 2.4.3*")
		assert.Contains(t, out, "released 03 September 2015")
		assert.NotContains(t, out, "{MINOR}")
		assert.NotContains(t, out, "{VERSION}")
		assert.NotContains(t, out, "{DATE}")
	})
}
