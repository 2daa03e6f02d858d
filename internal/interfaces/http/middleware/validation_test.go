package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefixedRequest struct {
	Name         string `json:"name" binding:"required"`
	ReportPrefix string `json:"report_prefix" binding:"omitempty,report_prefix"`
	VendorTaxID  string `json:"vendor_tax_id" binding:"omitempty,ruc"`
}

func validate(t *testing.T, req prefixedRequest) error {
	t.Helper()
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v.Struct(req)
}

func TestReportPrefixValidation(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"uppercase letters", "REP", false},
		{"single letter", "C", false},
		{"empty skipped", "", false},
		{"lowercase", "rep", true},
		{"digits", "REP1", true},
		{"too long", "ABCDEFGHIJK", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(t, prefixedRequest{Name: "Acme", ReportPrefix: tt.prefix})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRUCValidation(t *testing.T) {
	tests := []struct {
		name    string
		ruc     string
		wantErr bool
	}{
		{"valid", "20123456789", false},
		{"empty skipped", "", false},
		{"too short", "2012345678", true},
		{"letters", "2012345678X", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(t, prefixedRequest{Name: "Acme", VendorTaxID: tt.ruc})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationMessageUsesJSONFieldNames(t *testing.T) {
	err := validate(t, prefixedRequest{ReportPrefix: "bad"})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "name: this field is required")
	assert.Contains(t, msg, "report_prefix: must be 1 to 10 uppercase letters")
}

func TestValidationMessageFallback(t *testing.T) {
	assert.Equal(t, "Invalid request", ValidationMessage(errors.New("unexpected EOF")))
}
