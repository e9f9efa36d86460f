package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/tally-bridge/internal/gateway"
)

func TestInterpret_LineErrorWinsOverCounts(t *testing.T) {
	body := `<ENVELOPE>
		<LINEERROR>Ledger 'Acme' does not exist!</LINEERROR>
		<CREATED>3</CREATED><ALTERED>0</ALTERED><ERRORS>0</ERRORS>
	</ENVELOPE>`

	r := gateway.Interpret(body)
	assert.False(t, r.Success)
	assert.Equal(t, "Tally Error: Ledger 'Acme' does not exist!", r.Message)
}

func TestInterpret_EmptyLineError(t *testing.T) {
	r := gateway.Interpret("<LINEERROR></LINEERROR>")
	assert.False(t, r.Success)
	assert.Equal(t, "Tally Error: Unknown Tally Error", r.Message)
}

func TestInterpret_ErrorCountFails(t *testing.T) {
	r := gateway.Interpret("<CREATED>1</CREATED><ERRORS>2</ERRORS>")
	assert.False(t, r.Success)
	assert.Equal(t, "Tally reported 2 errors", r.Message)
	assert.Equal(t, 2, r.Errors)
	assert.Equal(t, 1, r.Created)
}

func TestInterpret_CreatedSucceeds(t *testing.T) {
	r := gateway.Interpret("<CREATED>5</CREATED><ALTERED>0</ALTERED><ERRORS>0</ERRORS>")
	assert.True(t, r.Success)
	assert.Equal(t, "Success: Created 5, Altered 0", r.Message)
	assert.Equal(t, 5, r.Created)
}

func TestInterpret_AlteredAloneSucceeds(t *testing.T) {
	r := gateway.Interpret("<ALTERED>2</ALTERED>")
	assert.True(t, r.Success)
	assert.Equal(t, 2, r.Altered)
}

func TestInterpret_AmbiguousResponseIsFailure(t *testing.T) {
	// An HTTP 200 with no recognizable tags means Tally dropped the
	// request on the floor; it must not read as success.
	for _, body := range []string{
		"",
		"<ENVELOPE><STATUS>1</STATUS></ENVELOPE>",
		"<CREATED>0</CREATED><ALTERED>0</ALTERED><ERRORS>0</ERRORS>",
		"not xml at all",
	} {
		r := gateway.Interpret(body)
		assert.False(t, r.Success, "body %q", body)
		assert.Equal(t, "Tally ignored the request", r.Message)
	}
}

func TestInterpret_MultilineLineError(t *testing.T) {
	r := gateway.Interpret("<LINEERROR>line one\nline two</LINEERROR>")
	assert.False(t, r.Success)
	assert.Contains(t, r.Message, "line one\nline two")
}
