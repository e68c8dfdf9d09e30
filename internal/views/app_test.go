package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"nfctag/nfcTerm/internal/models"
)

func TestReloadCompletionReachesRegistryWhileExportOpen(t *testing.T) {
	store := &fakeStore{contacts: []models.Contact{
		{ID: "1", PhoneNumber: "+49123", Text: "Notfall", NdefData: "dGVzdA=="},
	}}
	root := NewAppModel(store, t.TempDir(), zerolog.Nop())

	var app tea.Model = *root
	app, _ = app.Update(root.Init()())
	require.Len(t, root.contacts.contacts, 1)

	store.contacts = append(store.contacts, models.Contact{
		ID: "2", PhoneNumber: "+44111", Text: "Office",
	})
	app, cmd := app.Update(key("r"))
	require.NotNil(t, cmd)
	require.True(t, root.contacts.loading)
	completion := cmd()

	app, navCmd := app.Update(key("enter"))
	app, _ = app.Update(navCmd())
	require.Equal(t, ViewExport, app.(AppModel).state)

	app, _ = app.Update(completion)
	require.False(t, root.contacts.loading)
	require.Len(t, root.contacts.contacts, 2)

	app, backCmd := app.Update(key("esc"))
	app, _ = app.Update(backCmd())
	require.Equal(t, ViewContacts, app.(AppModel).state)
}

func TestSaveFailureReachesRegistryWhileExportOpen(t *testing.T) {
	store := &fakeStore{contacts: []models.Contact{
		{ID: "1", PhoneNumber: "+49123", Text: "Notfall", NdefData: "dGVzdA=="},
	}}
	root := NewAppModel(store, t.TempDir(), zerolog.Nop())

	var app tea.Model = *root
	app, _ = app.Update(root.Init()())

	root.contacts.mutationPending = true

	app, navCmd := app.Update(key("enter"))
	app, _ = app.Update(navCmd())
	require.Equal(t, ViewExport, app.(AppModel).state)

	_, cmd := app.Update(ContactSaveFailedMsg{Err: nil})
	require.False(t, root.contacts.mutationPending)
	require.NotNil(t, cmd)
}
