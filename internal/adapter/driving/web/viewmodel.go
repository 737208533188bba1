package web

import (
	"fmt"

	vm "github.com/ericfisherdev/pwshare/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/pwshare/internal/domain/model"
)

// toCredentialRow converts an owned credential and its recipients' usernames
// into a table row.
func toCredentialRow(c model.Credential, recipients []string) vm.CredentialRow {
	if recipients == nil {
		recipients = []string{}
	}
	return vm.CredentialRow{
		ID:          c.ID,
		SiteName:    c.SiteName,
		Password:    c.Password,
		SharedWith:  recipients,
		ShareAction: fmt.Sprintf("/share_password/%d", c.ID),
	}
}

// toSharedRows converts credentials shared with the viewer into table rows.
func toSharedRows(shared []model.SharedCredential) []vm.SharedRow {
	rows := make([]vm.SharedRow, 0, len(shared))
	for _, s := range shared {
		rows = append(rows, vm.SharedRow{
			SiteName: s.SiteName,
			Password: s.Password,
			Owner:    s.OwnerUsername,
		})
	}
	return rows
}
