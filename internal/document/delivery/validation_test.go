package delivery

import (
	"testing"

	"mindmaker-backend/internal/document/dto"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators(t *testing.T) {
	require.NotPanics(t, RegisterValidators)
	require.NotPanics(t, RegisterValidators)

	private := "private"
	hidden := "hidden"
	cases := []struct {
		name  string
		req   interface{}
		valid bool
	}{
		{"known template", &dto.CreateDocumentRequest{Title: "Plan", Template: "lean"}, true},
		{"unknown template", &dto.CreateDocumentRequest{Title: "Plan", Template: "okr"}, false},
		{"bad create status", &dto.CreateDocumentRequest{Title: "Plan", Template: "swot", Status: "hidden"}, false},
		{"known status", &dto.UpdateDocumentRequest{ID: "d1", Status: &private}, true},
		{"unknown status", &dto.UpdateDocumentRequest{ID: "d1", Status: &hidden}, false},
	}
	for _, tc := range cases {
		err := binding.Validator.ValidateStruct(tc.req)
		if tc.valid {
			assert.NoError(t, err, tc.name)
		} else {
			assert.Error(t, err, tc.name)
		}
	}
}
