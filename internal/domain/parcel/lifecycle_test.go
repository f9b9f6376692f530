package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("LOST")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("en_envio")
	assert.ErrorIs(t, err, ErrInvalidStatus, "status names are case sensitive")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Despachado Bodega Miami", StatusEnEnvio.Label())
	assert.Equal(t, "Llegó a Bodega Miami", StatusEnBodegaMiami.Label())
	assert.Equal(t, "Despachado a tú Dirección", StatusLlego.Label())

	// Unknown statuses fall back to the raw value
	assert.Equal(t, "LOST", Status("LOST").Label())
}

func TestDefaultStatus(t *testing.T) {
	assert.Equal(t, StatusEnEnvio, DefaultStatus)
}

func TestValidateTransitionPermissive(t *testing.T) {
	// Any move between known statuses is allowed, including backward
	assert.NoError(t, ValidateTransition(StatusLlego, StatusComprado, false))
	assert.NoError(t, ValidateTransition(StatusEnEnvio, StatusEnBodegaMiami, false))
	assert.NoError(t, ValidateTransition(StatusEnEnvio, StatusEnEnvio, false))

	err := ValidateTransition(StatusEnEnvio, Status("LOST"), false)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestValidateTransitionStrict(t *testing.T) {
	assert.NoError(t, ValidateTransition(StatusEnEnvio, StatusEnBodegaMiami, true))
	assert.NoError(t, ValidateTransition(StatusComprado, StatusLlego, true), "skipping forward is allowed")
	assert.NoError(t, ValidateTransition(StatusEnBodegaMiami, StatusEnBodegaMiami, true), "re-setting the current status is a no-op")

	err := ValidateTransition(StatusEnColombia, StatusEnEnvio, true)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	err = ValidateTransition(StatusLlego, StatusComprado, true)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}
