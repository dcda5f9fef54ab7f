package shared

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSONIgnoresUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"method":"receipts.pay","id":42,"extra":{"nested":true}}`))

	var dst struct {
		Method string `json:"method"`
	}
	require.NoError(t, DecodeJSON(req, &dst))
	require.Equal(t, "receipts.pay", dst.Method)
}

func TestDecodeJSONRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"method":`))

	var dst struct {
		Method string `json:"method"`
	}
	require.Error(t, DecodeJSON(req, &dst))
}
