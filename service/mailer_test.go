package service

import (
	"testing"
	"time"

	"github.com/leadflow/leadflow_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	lead := leadWith(models.LeadStatusNew, time.Now())
	lead.CompanyName = "Acme Corp"
	lead.ContactPersonName = "Jane Doe"
	lead.AssignedIntern = "Sarah"

	t.Run("substitutes lead fields", func(t *testing.T) {
		body, err := RenderTemplate("Hi {{.ContactPersonName}}, greetings from {{.AssignedIntern}} about {{.CompanyName}}!", lead)
		require.NoError(t, err)
		assert.Equal(t, "Hi Jane Doe, greetings from Sarah about Acme Corp!", body)
	})

	t.Run("plain text passes through", func(t *testing.T) {
		body, err := RenderTemplate("No placeholders here.", lead)
		require.NoError(t, err)
		assert.Equal(t, "No placeholders here.", body)
	})

	t.Run("broken template returns an error", func(t *testing.T) {
		_, err := RenderTemplate("Hi {{.ContactPersonName", lead)
		assert.Error(t, err)
	})
}
