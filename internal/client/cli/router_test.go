package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/examprep-admin/internal/common"
)

func TestRouter(t *testing.T) {
	var notes []string
	r := NewRouter(func(msg string) { notes = append(notes, msg) })
	assert.Equal(t, common.LoginLocation, r.Location())

	r.Go(common.DashboardLocation)
	assert.Equal(t, common.DashboardLocation, r.Location())
	assert.Empty(t, notes, "console moves are silent")

	r.Navigate(common.LoginLocation)
	assert.Equal(t, common.LoginLocation, r.Location())
	assert.Len(t, notes, 1)

	r.Navigate(common.LoginLocation)
	assert.Len(t, notes, 1, "no notification when already on login")
}
